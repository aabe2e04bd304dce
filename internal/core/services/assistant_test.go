package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/logger"
)

func testHits() []driven.VectorHit {
	return []driven.VectorHit{
		{ID: "1", Source: domain.SourceProductInfo, Content: "Barang yang tersedia", Similarity: 0.9},
		{ID: "2", Source: domain.SourceShippingInfo, Content: "Ongkos kirim", Similarity: 0.8},
		{ID: "3", Source: domain.SourceInstructions, Content: "Setelah memilih", Similarity: 0.7},
		{ID: "4", Source: "extra", Content: "Extra", Similarity: 0.1},
	}
}

func TestAssistantService_Ask(t *testing.T) {
	idx := &mockVectorIndex{hits: testHits()}
	llm := &mockLLMService{response: "Details: [Baju Kemeja (2 x Rp100,000)]\nShipping Cost: Rp20,000 (destination: jakarta)"}
	prompts := newMockPromptStore()
	service := NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, idx, llm, prompts, memory.NewModelConfigStore())

	answer, err := service.Ask(context.Background(), "  2 baju kemeja ke jakarta  ")

	require.NoError(t, err)
	assert.Equal(t, "2 baju kemeja ke jakarta", answer.Question)
	assert.Equal(t, llm.response, answer.Text)
	assert.True(t, answer.Structured)
	require.Len(t, answer.Fields, 2)
	assert.Equal(t, "Shipping Cost", answer.Fields[1].Key)

	// Default k is 3 and the context joins documents with a blank line.
	assert.Equal(t, 3, idx.searchK)
	require.Len(t, answer.Sources, 3)
	require.Len(t, llm.prompts, 1)
	assert.Equal(t,
		"SHOP\nBarang yang tersedia\n\nOngkos kirim\n\nSetelah memilih\nQ: 2 baju kemeja ke jakarta",
		llm.prompts[0])
	assert.Equal(t, []string{driven.PromptAnswerShop}, prompts.loaded)
}

func TestAssistantService_Ask_TemperatureFromModelConfig(t *testing.T) {
	models := memory.NewModelConfigStore()
	require.NoError(t, models.Save(domain.ModelConfig{Model: "llama3", Temperature: 0.4}))
	llm := &mockLLMService{response: "ok"}
	service := NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{}, llm, newMockPromptStore(), models)

	_, err := service.Ask(context.Background(), "hai")

	require.NoError(t, err)
	require.Len(t, llm.opts, 1)
	assert.InDelta(t, 0.4, llm.opts[0].Temperature, 0.0001)
}

func TestAssistantService_Ask_EmptyRetrievalUsesPlaceholder(t *testing.T) {
	llm := &mockLLMService{response: "Maaf"}
	service := NewAssistantService(domain.VariantInventory, &mockEmbeddingService{}, &mockVectorIndex{}, llm, newMockPromptStore(), nil)

	answer, err := service.Ask(context.Background(), "status project a?")

	require.NoError(t, err)
	assert.Equal(t, "INVENTORY\n"+domain.NoContextPlaceholder+"\nQ: status project a?", llm.prompts[0])
	assert.Empty(t, answer.Sources)
	assert.False(t, answer.Structured)
	assert.Equal(t, "Maaf", answer.Text)
}

func TestAssistantService_Ask_TopK(t *testing.T) {
	idx := &mockVectorIndex{hits: testHits()}
	service := NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, idx, &mockLLMService{}, newMockPromptStore(), nil)

	service.SetTopK(1)
	answer, err := service.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, answer.Sources, 1)

	service.SetTopK(0)
	_, err = service.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, idx.searchK)
}

func TestAssistantService_Ask_BlankQuestion(t *testing.T) {
	llm := &mockLLMService{}
	service := NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{}, llm, newMockPromptStore(), nil)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := service.Ask(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, llm.prompts)
}

func TestAssistantService_Ask_Unavailable(t *testing.T) {
	ctx := context.Background()
	prompts := newMockPromptStore()

	_, err := NewAssistantService(domain.VariantShop, nil, &mockVectorIndex{}, &mockLLMService{}, prompts, nil).Ask(ctx, "q")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, nil, &mockLLMService{}, prompts, nil).Ask(ctx, "q")
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)

	_, err = NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{}, nil, prompts, nil).Ask(ctx, "q")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAssistantService_Ask_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	prompts := newMockPromptStore()
	boom := errors.New("boom")

	_, err := NewAssistantService(domain.VariantShop, &mockEmbeddingService{embedErr: boom}, &mockVectorIndex{}, &mockLLMService{}, prompts, nil).Ask(ctx, "q")
	assert.ErrorIs(t, err, boom)

	_, err = NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{searchErr: boom}, &mockLLMService{}, prompts, nil).Ask(ctx, "q")
	assert.ErrorIs(t, err, boom)

	_, err = NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{}, &mockLLMService{generateErr: boom}, prompts, nil).Ask(ctx, "q")
	assert.ErrorIs(t, err, boom)

	_, err = NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{}, &mockLLMService{}, &mockPromptStore{}, nil).Ask(ctx, "q")
	assert.Error(t, err)
}

func TestAssistantService_Ask_ContextIsNotReinterpolated(t *testing.T) {
	idx := &mockVectorIndex{hits: []driven.VectorHit{{Content: "literal {question} text"}}}
	llm := &mockLLMService{}
	service := NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, idx, llm, newMockPromptStore(), nil)

	_, err := service.Ask(context.Background(), "Q1")

	require.NoError(t, err)
	assert.Equal(t, "SHOP\nliteral {question} text\nQ: Q1", llm.prompts[0])
}

func TestAssistantService_Ask_FreeFormAnswerWarnsWithoutVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(false)
	defer logger.SetOutput(os.Stderr)

	llm := &mockLLMService{response: "Maaf, saya tidak tahu."}
	service := NewAssistantService(domain.VariantShop, &mockEmbeddingService{}, &mockVectorIndex{hits: testHits()}, llm, newMockPromptStore(), memory.NewModelConfigStore())

	answer, err := service.Ask(context.Background(), "apa kabar?")

	require.NoError(t, err)
	assert.False(t, answer.Structured)
	assert.Equal(t, "Maaf, saya tidak tahu.", answer.Text)
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=answer_unstructured")
	assert.Contains(t, out, "variant=shop")
}
