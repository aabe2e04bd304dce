package driven

import "github.com/custodia-labs/lapak/internal/core/domain"

// AIConfigValidator checks AI provider settings by contacting the provider.
type AIConfigValidator interface {
	// ValidateEmbedding pings the configured embedding provider.
	// Incomplete settings are an error.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM pings the configured chat model provider.
	// Incomplete settings are an error.
	ValidateLLM(config *domain.LLMSettings) error
}
