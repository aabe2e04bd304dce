package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Each text embeds to a vector chosen by the vectors map, or a unit vector.
type mockEmbeddingService struct {
	vectors  map[string][]float32
	embedErr error
	calls    int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return 3
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits      []driven.VectorHit
	added     []driven.VectorEntry
	count     int
	searchK   int
	searchErr error
	countErr  error
	addErr    error
	resets    int
}

func (m *mockVectorIndex) Add(_ context.Context, entries []driven.VectorEntry) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, entries...)
	m.count += len(entries)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	m.searchK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Count(_ context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockVectorIndex) Reset(_ context.Context) error {
	m.resets++
	m.count = 0
	m.added = nil
	return nil
}

func (m *mockVectorIndex) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	generateErr error
	prompts     []string
	opts        []driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	templates map[string]string
	loaded    []string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	m.loaded = append(m.loaded, name)
	t, ok := m.templates[name]
	if !ok {
		return "", errors.New("prompt not found")
	}
	return t, nil
}

func (m *mockPromptStore) Reload() {}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{templates: map[string]string{
		driven.PromptAnswerShop:      "SHOP\n{context}\nQ: {question}",
		driven.PromptAnswerInventory: "INVENTORY\n{context}\nQ: {question}",
	}}
}

// failingCatalogStore implements driven.CatalogStore and fails every call.
type failingCatalogStore struct {
	err error
}

func (f *failingCatalogStore) Initialize(_ context.Context, _ domain.Seed) error {
	return f.err
}

func (f *failingCatalogStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	return nil, f.err
}

func (f *failingCatalogStore) ListShippingRates(_ context.Context) ([]domain.ShippingRate, error) {
	return nil, f.err
}

func (f *failingCatalogStore) ListProjects(_ context.Context) ([]domain.Project, error) {
	return nil, f.err
}

func (f *failingCatalogStore) ListProjectItems(_ context.Context) ([]domain.ProjectItem, error) {
	return nil, f.err
}

// mockValidator implements driven.AIConfigValidator for testing.
type mockValidator struct {
	embeddingErr error
	llmErr       error
	lastLLM      *domain.LLMSettings
}

func (m *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	return m.embeddingErr
}

func (m *mockValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.lastLLM = cfg
	return m.llmErr
}
