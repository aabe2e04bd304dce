package driving

import "github.com/custodia-labs/lapak/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// SetVariant switches the catalog variant.
	SetVariant(variant domain.Variant) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, baseURL, apiKey string) error

	// SetLLMProvider configures the chat model provider.
	SetLLMProvider(provider domain.AIProvider, baseURL, apiKey string) error

	// ModelConfig returns the chat model configuration.
	ModelConfig() (domain.ModelConfig, error)

	// SetModelConfig updates the chat model configuration.
	SetModelConfig(cfg domain.ModelConfig) error

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig pings the configured chat model provider.
	ValidateLLMConfig() error
}
