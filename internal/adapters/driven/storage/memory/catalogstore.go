package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
// Rows are kept in insertion order, like the SQLite tables.
type CatalogStore struct {
	mu            sync.RWMutex
	products      []domain.Product
	shippingRates []domain.ShippingRate
	projects      []domain.Project
	projectItems  []domain.ProjectItem
	nextID        int64
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{nextID: 1}
}

// Initialize inserts each seed table only if the matching table is empty.
func (s *CatalogStore) Initialize(_ context.Context, seed domain.Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) == 0 {
		for _, p := range seed.Products {
			p.ID = s.nextID
			p.Variants = slices.Clone(p.Variants)
			s.nextID++
			s.products = append(s.products, p)
		}
	}
	if len(s.shippingRates) == 0 {
		s.shippingRates = append(s.shippingRates, seed.ShippingRates...)
	}
	if len(s.projects) == 0 {
		s.projects = append(s.projects, seed.Projects...)
	}
	if len(s.projectItems) == 0 {
		s.projectItems = append(s.projectItems, seed.ProjectItems...)
	}
	return nil
}

// AddProduct appends a product row.
func (s *CatalogStore) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	s.products = append(s.products, p)
}

// AddShippingRate appends a shipping rate row.
func (s *CatalogStore) AddShippingRate(r domain.ShippingRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shippingRates = append(s.shippingRates, r)
}

// AddProject appends a project row.
func (s *CatalogStore) AddProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, p)
}

// ListProducts returns all products.
func (s *CatalogStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		p.Variants = slices.Clone(p.Variants)
		out[i] = p
	}
	return out, nil
}

// ListShippingRates returns all shipping rate rows.
func (s *CatalogStore) ListShippingRates(_ context.Context) ([]domain.ShippingRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.shippingRates), nil
}

// ListProjects returns all project rows.
func (s *CatalogStore) ListProjects(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects), nil
}

// ListProjectItems returns all project item rows.
func (s *CatalogStore) ListProjectItems(_ context.Context) ([]domain.ProjectItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projectItems), nil
}
