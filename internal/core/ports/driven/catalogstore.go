package driven

import (
	"context"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// CatalogStore persists the relational catalog.
// Rows are returned in insertion order.
type CatalogStore interface {
	// Initialize inserts each seed table's rows only if that table is empty.
	Initialize(ctx context.Context, seed domain.Seed) error

	// ListProducts returns all products.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ListShippingRates returns all shipping rate rows, duplicates included.
	ListShippingRates(ctx context.Context) ([]domain.ShippingRate, error)

	// ListProjects returns all project rows, duplicates included.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// ListProjectItems returns the project/product join rows.
	ListProjectItems(ctx context.Context) ([]domain.ProjectItem, error)
}
