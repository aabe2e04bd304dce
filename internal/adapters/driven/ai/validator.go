package ai

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks that the providers behind the assistant answer.
// Embeddings must come from a provider that can index catalog documents.
type ConfigValidator struct{}

// NewConfigValidator creates a validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the embedding provider used to index the catalog.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	if config == nil {
		return fmt.Errorf("%w: no embedding settings", domain.ErrEmbeddingUnavailable)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), config.Provider) {
		return fmt.Errorf("%w: %s cannot embed catalog documents, choose one of %s",
			domain.ErrEmbeddingUnavailable, config.Provider, providerNames(domain.AllEmbeddingProviders()))
	}

	svc, err := CreateEmbeddingService(config)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable (%w). Run 'lapak settings embedding' to fix",
			domain.ErrEmbeddingUnavailable, config.Provider, err)
	}
	return nil
}

// ValidateLLM pings the chat model provider that answers questions.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	svc, err := CreateAndValidateLLMService(context.Background(), config)
	if err != nil {
		return err
	}
	return svc.Close()
}

func providerNames(providers []domain.AIProvider) string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
