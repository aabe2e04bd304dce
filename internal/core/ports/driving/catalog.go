package driving

import (
	"context"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// CatalogService exposes the catalog to external actors.
type CatalogService interface {
	// Initialize seeds the empty catalog tables for the active variant.
	Initialize(ctx context.Context) error

	// Variant returns the active catalog variant.
	Variant() domain.Variant

	// Snapshot reads the whole catalog, with duplicate city and
	// project keys resolved last-write-wins.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// SearchProducts returns products whose name contains query, ignoring case.
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)

	// LowStock returns products whose stock is strictly below threshold.
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)

	// Quote prices a cart including shipping to city and the bulk discount.
	Quote(ctx context.Context, items []domain.CartItem, city string) (*domain.Quote, error)

	// Documents synthesizes the catalog documents from the current snapshot.
	Documents(ctx context.Context) ([]domain.CatalogDocument, error)
}
