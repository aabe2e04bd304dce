package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
	"github.com/custodia-labs/lapak/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService reads and prices the catalog of one variant.
type CatalogService struct {
	store   driven.CatalogStore
	variant domain.Variant
}

// NewCatalogService creates a catalog service for the given variant.
func NewCatalogService(store driven.CatalogStore, variant domain.Variant) *CatalogService {
	return &CatalogService{
		store:   store,
		variant: variant,
	}
}

// Initialize seeds the empty catalog tables for the active variant.
func (s *CatalogService) Initialize(ctx context.Context) error {
	seed, err := domain.SeedFor(s.variant)
	if err != nil {
		return fmt.Errorf("seed %q: %w", s.variant, err)
	}
	if err := s.store.Initialize(ctx, seed); err != nil {
		return fmt.Errorf("initialize catalog: %w", err)
	}
	logger.Debug("Catalog initialized for variant %s", s.variant)
	return nil
}

// Variant returns the active catalog variant.
func (s *CatalogService) Variant() domain.Variant {
	return s.variant
}

// Snapshot reads the whole catalog.
func (s *CatalogService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	snap := &domain.Snapshot{
		Variant:  s.variant,
		Products: products,
	}

	switch s.variant {
	case domain.VariantShop:
		rates, err := s.store.ListShippingRates(ctx)
		if err != nil {
			return nil, fmt.Errorf("list shipping rates: %w", err)
		}
		snap.ShippingRates = dedupeShippingRates(rates)
	case domain.VariantInventory:
		projects, err := s.store.ListProjects(ctx)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		items, err := s.store.ListProjectItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("list project items: %w", err)
		}
		snap.Projects = dedupeProjects(projects)
		snap.Allocations = groupAllocations(items)
	}

	return snap, nil
}

// SearchProducts returns products whose name contains query, ignoring case.
// A blank query matches every product.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	logger.Debug("Product search %q matched %d of %d", query, len(matches), len(products))
	return matches, nil
}

// LowStock returns products whose stock is strictly below threshold.
func (s *CatalogService) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.Stock < threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

// Quote prices a cart, adds shipping to city and applies the bulk discount
// to the item subtotal. The discount counts total quantity, not lines.
func (s *CatalogService) Quote(ctx context.Context, items []domain.CartItem, city string) (*domain.Quote, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	quote := &domain.Quote{}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for %q must be positive", domain.ErrInvalidInput, item.Name)
		}
		p, ok := findProduct(products, item.Name)
		if !ok {
			return nil, fmt.Errorf("product %q: %w", item.Name, domain.ErrNotFound)
		}
		if !p.InStock() {
			return nil, fmt.Errorf("product %q: %w", p.Name, domain.ErrOutOfStock)
		}

		amount := p.Price * int64(item.Quantity)
		quote.Lines = append(quote.Lines, domain.QuoteLine{
			Product:   p.Name,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
			Amount:    amount,
			Variants:  p.Variants,
		})
		quote.ItemCount += item.Quantity
		quote.Subtotal += amount
	}
	quote.Discounted = domain.ApplyDiscount(float64(quote.Subtotal), quote.ItemCount)

	if strings.TrimSpace(city) != "" {
		rate, err := s.shippingRate(ctx, city)
		if err != nil {
			return nil, err
		}
		quote.City = rate.City
		quote.ShippingFee = rate.Fee
	}

	quote.Total = quote.Discounted + float64(quote.ShippingFee)
	return quote, nil
}

// Documents synthesizes the catalog documents from the current snapshot.
func (s *CatalogService) Documents(ctx context.Context) ([]domain.CatalogDocument, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return SynthesizeDocuments(snap), nil
}

// shippingRate resolves a city, falling back to the out-of-town rate.
func (s *CatalogService) shippingRate(ctx context.Context, city string) (domain.ShippingRate, error) {
	rows, err := s.store.ListShippingRates(ctx)
	if err != nil {
		return domain.ShippingRate{}, fmt.Errorf("list shipping rates: %w", err)
	}
	rates := dedupeShippingRates(rows)

	var fallback *domain.ShippingRate
	for i, r := range rates {
		if strings.EqualFold(r.City, strings.TrimSpace(city)) {
			return r, nil
		}
		if r.City == domain.OutOfTownCity {
			fallback = &rates[i]
		}
	}
	if fallback != nil {
		logger.Debug("No shipping rate for %q, using %s", city, domain.OutOfTownCity)
		return *fallback, nil
	}
	return domain.ShippingRate{}, fmt.Errorf("shipping to %q: %w", city, domain.ErrNotFound)
}

func findProduct(products []domain.Product, name string) (domain.Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.Product{}, false
}

// dedupeShippingRates keeps one rate per city. A later row overwrites the
// fee but the city keeps its first position.
func dedupeShippingRates(rows []domain.ShippingRate) []domain.ShippingRate {
	pos := make(map[string]int, len(rows))
	out := make([]domain.ShippingRate, 0, len(rows))
	for _, r := range rows {
		if i, ok := pos[r.City]; ok {
			out[i] = r
			continue
		}
		pos[r.City] = len(out)
		out = append(out, r)
	}
	return out
}

// dedupeProjects keeps one project per name, last write wins.
func dedupeProjects(rows []domain.Project) []domain.Project {
	pos := make(map[string]int, len(rows))
	out := make([]domain.Project, 0, len(rows))
	for _, p := range rows {
		if i, ok := pos[p.Name]; ok {
			out[i] = p
			continue
		}
		pos[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}

// groupAllocations groups join rows per project in first-appearance order.
func groupAllocations(items []domain.ProjectItem) []domain.ProjectAllocation {
	pos := make(map[string]int)
	out := make([]domain.ProjectAllocation, 0)
	for _, item := range items {
		i, ok := pos[item.Project]
		if !ok {
			i = len(out)
			pos[item.Project] = i
			out = append(out, domain.ProjectAllocation{Project: item.Project})
		}
		out[i].Items = append(out[i].Items, item)
	}
	return out
}
