package mcp

import (
	"context"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	snapshot  *domain.Snapshot
	products  []domain.Product
	quote     *domain.Quote
	documents []domain.CatalogDocument
	err       error

	gotQuery     string
	gotThreshold int
	gotItems     []domain.CartItem
	gotCity      string
}

func (m *mockCatalogService) Initialize(_ context.Context) error {
	return m.err
}

func (m *mockCatalogService) Variant() domain.Variant {
	return domain.VariantShop
}

func (m *mockCatalogService) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	return m.snapshot, m.err
}

func (m *mockCatalogService) SearchProducts(_ context.Context, query string) ([]domain.Product, error) {
	m.gotQuery = query
	return m.products, m.err
}

func (m *mockCatalogService) LowStock(_ context.Context, threshold int) ([]domain.Product, error) {
	m.gotThreshold = threshold
	return m.products, m.err
}

func (m *mockCatalogService) Quote(
	_ context.Context,
	items []domain.CartItem,
	city string,
) (*domain.Quote, error) {
	m.gotItems = items
	m.gotCity = city
	return m.quote, m.err
}

func (m *mockCatalogService) Documents(_ context.Context) ([]domain.CatalogDocument, error) {
	return m.documents, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAssistantService) Ask(_ context.Context, _ string) (*domain.Answer, error) {
	return m.answer, m.err
}
