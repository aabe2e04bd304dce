package web

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

type mockCatalog struct {
	snapshot    *domain.Snapshot
	snapshotErr error
	searchErr   error
}

func (m *mockCatalog) Initialize(context.Context) error { return nil }

func (m *mockCatalog) Variant() domain.Variant { return m.snapshot.Variant }

func (m *mockCatalog) Snapshot(context.Context) (*domain.Snapshot, error) {
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return m.snapshot, nil
}

func (m *mockCatalog) SearchProducts(_ context.Context, query string) ([]domain.Product, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var out []domain.Product
	for _, p := range m.snapshot.Products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalog) LowStock(context.Context, int) ([]domain.Product, error) { return nil, nil }

func (m *mockCatalog) Quote(context.Context, []domain.CartItem, string) (*domain.Quote, error) {
	return nil, nil
}

func (m *mockCatalog) Documents(context.Context) ([]domain.CatalogDocument, error) { return nil, nil }

type mockAssistant struct {
	mu        sync.Mutex
	answer    string
	err       error
	panics    bool
	questions []string
}

func (m *mockAssistant) Ask(_ context.Context, question string) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, question)
	if m.panics {
		var cache map[string]string
		cache[question] = "boom"
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Answer{Question: question, Text: m.answer}, nil
}

type mockTelemetry struct {
	readings []domain.Reading
	err      error
}

func (m *mockTelemetry) Record(_ context.Context, reading domain.Reading) (domain.Reading, error) {
	if len(reading) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if m.err != nil {
		return nil, m.err
	}
	m.readings = append(m.readings, reading)
	return reading, nil
}

func shopSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Variant: domain.VariantShop,
		Products: []domain.Product{
			{ID: 1, Name: "Baju Kemeja", Price: 100000, Category: "Pakaian", Variants: []string{"S", "M"}, Stock: 1},
			{ID: 2, Name: "Topi Kinz", Price: 50000, Category: "Aksesoris", Variants: []string{"All Size"}, Stock: 0},
		},
		ShippingRates: []domain.ShippingRate{{City: "Jakarta", Fee: 20000}},
	}
}

func inventorySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Variant: domain.VariantInventory,
		Products: []domain.Product{
			{ID: 1, Name: "Baut", Price: 100000, Category: "Tools", Variants: []string{"10"}, Stock: 1},
		},
		Projects: []domain.Project{{Name: "Project A", City: "Jakarta", Agency: "Kejagung", Status: "Finish"}},
		Allocations: []domain.ProjectAllocation{{
			Project: "Project A",
			Items:   []domain.ProjectItem{{Project: "Project A", Product: "Baut", Quantity: 10}},
		}},
	}
}
