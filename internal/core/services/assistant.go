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

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// contextSeparator joins retrieved documents into the prompt context.
const contextSeparator = "\n\n"

// AssistantService answers questions by retrieving catalog documents and
// asking the chat model. It keeps no state between requests.
type AssistantService struct {
	variant     domain.Variant
	embedder    driven.EmbeddingService
	vectorIndex driven.VectorIndex
	llm         driven.LLMService
	prompts     driven.PromptStore
	models      driven.ModelConfigStore
	topK        int
}

// NewAssistantService creates a new assistant service.
// The embedder, vectorIndex and llm parameters may be nil; Ask then fails
// with the matching unavailable error.
func NewAssistantService(
	variant domain.Variant,
	embedder driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
	llm driven.LLMService,
	prompts driven.PromptStore,
	models driven.ModelConfigStore,
) *AssistantService {
	return &AssistantService{
		variant:     variant,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		llm:         llm,
		prompts:     prompts,
		models:      models,
		topK:        domain.DefaultTopK,
	}
}

// SetTopK sets the number of documents retrieved per question.
// Non-positive values restore the default.
func (s *AssistantService) SetTopK(k int) {
	if k <= 0 {
		k = domain.DefaultTopK
	}
	s.topK = k
}

// Ask retrieves context for question and asks the chat model.
func (s *AssistantService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Retrieval")
	logger.Debug("Question: %q", question)

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	hits, err := s.vectorIndex.Search(ctx, queryVec, s.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Retrieved %d documents (k=%d)", len(hits), s.topK)

	sources := make([]domain.RetrievedDocument, len(hits))
	for i, h := range hits {
		sources[i] = domain.RetrievedDocument{
			ID:         h.ID,
			Source:     h.Source,
			Content:    h.Content,
			Similarity: h.Similarity,
		}
		logger.Debug("  %d. %s (similarity %.4f)", i+1, h.Source, h.Similarity)
	}

	prompt, err := s.buildPrompt(formatContext(hits), question)
	if err != nil {
		return nil, err
	}

	cfg, err := s.modelConfig()
	if err != nil {
		return nil, err
	}

	logger.Section("Generation")
	logger.Debug("Model: %s, temperature: %v", s.llm.ModelName(), cfg.Temperature)
	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: cfg.Temperature})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	fields, structured := domain.ParseAnswer(s.variant, text)
	if !structured {
		logger.Slog().Warn("answer_unstructured",
			"variant", s.variant.String(),
			"detail", "answer does not follow the expected layout, returning raw text",
		)
	}

	return &domain.Answer{
		Question:   question,
		Text:       text,
		Sources:    sources,
		Fields:     fields,
		Structured: structured,
	}, nil
}

func (s *AssistantService) buildPrompt(contextText, question string) (string, error) {
	template, err := s.prompts.Load(driven.AnswerPromptName(s.variant))
	if err != nil {
		return "", fmt.Errorf("load answer prompt: %w", err)
	}
	r := strings.NewReplacer(
		driven.PlaceholderContext, contextText,
		driven.PlaceholderQuestion, question,
	)
	return r.Replace(template), nil
}

func (s *AssistantService) modelConfig() (domain.ModelConfig, error) {
	if s.models == nil {
		return domain.DefaultModelConfig(), nil
	}
	cfg, err := s.models.Load()
	if err != nil {
		return domain.ModelConfig{}, fmt.Errorf("load model config: %w", err)
	}
	return cfg, nil
}

// formatContext joins document text with blank lines, or returns the
// placeholder when nothing was retrieved.
func formatContext(hits []driven.VectorHit) string {
	if len(hits) == 0 {
		return domain.NoContextPlaceholder
	}
	parts := make([]string, len(hits))
	for i, h := range hits {
		parts[i] = h.Content
	}
	return strings.Join(parts, contextSeparator)
}
