package services

import (
	"fmt"
	"os"
	"slices"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyVariant          = "catalog.variant"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyLLMProvider      = "llm.provider"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyTopK             = "retrieval.top_k"
	keyCollection       = "retrieval.collection"
	keyServerAddr       = "server.addr"
	keyAskRate          = "server.ask_rate"
	keySensorAddr       = "sensor.addr"
	keySensorMongoURI   = "sensor.mongo_uri"
	keySensorDatabase   = "sensor.database"
	keySensorCollection = "sensor.collection"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvMongoURI        = "MONGO_URI"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	models      driven.ModelConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// The models and aiValidator parameters are optional (can be nil).
func NewSettingsService(
	configStore driven.ConfigStore,
	models driven.ModelConfigStore,
	aiValidator driven.AIConfigValidator,
) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		models:      models,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Stored values are layered over defaults, then environment overrides apply.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings, err := s.stored()
	if err != nil {
		return nil, err
	}
	s.applyEnv(settings)
	return settings, nil
}

// stored reads settings without environment overrides.
func (s *SettingsService) stored() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Variant: s.getVariant(defaults.Variant),
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
			Timeout:  defaults.LLM.Timeout,
		},
		Retrieval: domain.RetrievalSettings{
			TopK:       s.getInt(keyTopK, defaults.Retrieval.TopK),
			Collection: s.getString(keyCollection, defaults.Retrieval.Collection),
		},
		Server: domain.ServerSettings{
			Addr:    s.getString(keyServerAddr, defaults.Server.Addr),
			AskRate: s.getFloat(keyAskRate, defaults.Server.AskRate),
		},
		Sensor: domain.SensorSettings{
			Addr:       s.getString(keySensorAddr, defaults.Sensor.Addr),
			MongoURI:   s.configStore.GetString(keySensorMongoURI),
			Database:   s.getString(keySensorDatabase, defaults.Sensor.Database),
			Collection: s.getString(keySensorCollection, defaults.Sensor.Collection),
		},
	}

	if settings.Embedding.Provider.IsLocal() && settings.Embedding.BaseURL == "" {
		settings.Embedding.BaseURL = domain.DefaultOllamaURL
	}
	if settings.LLM.Provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = domain.DefaultOllamaURL
	}

	cfg, err := s.ModelConfig()
	if err != nil {
		return nil, err
	}
	settings.LLM.Model = cfg.Model
	return settings, nil
}

// Save persists application settings. The chat model lives in the
// model configuration and is not written here.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyVariant, settings.Variant.String()},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyTopK, settings.Retrieval.TopK},
		{keyCollection, settings.Retrieval.Collection},
		{keyServerAddr, settings.Server.Addr},
		{keyAskRate, settings.Server.AskRate},
		{keySensorAddr, settings.Sensor.Addr},
		{keySensorDatabase, settings.Sensor.Database},
		{keySensorCollection, settings.Sensor.Collection},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Empty secrets are skipped so a blank never overwrites a stored key.
	secrets := map[string]string{
		keyEmbedAPIKey:    settings.Embedding.APIKey,
		keyLLMAPIKey:      settings.LLM.APIKey,
		keySensorMongoURI: settings.Sensor.MongoURI,
	}
	for key, val := range secrets {
		if val == "" {
			continue
		}
		if err := s.configStore.Set(key, val); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// SetVariant switches the catalog variant.
func (s *SettingsService) SetVariant(variant domain.Variant) error {
	if !variant.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedVariant, variant)
	}
	return s.configStore.Set(keyVariant, variant.String())
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, baseURL, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.stored()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}
	settings.Embedding.BaseURL = resolveBaseURL(provider, baseURL)
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the chat model provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, baseURL, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.stored()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.BaseURL = resolveBaseURL(provider, baseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// ModelConfig returns the chat model configuration.
func (s *SettingsService) ModelConfig() (domain.ModelConfig, error) {
	if s.models == nil {
		return domain.DefaultModelConfig(), nil
	}
	cfg, err := s.models.Load()
	if err != nil {
		return domain.ModelConfig{}, fmt.Errorf("load model config: %w", err)
	}
	return cfg, nil
}

// SetModelConfig updates the chat model configuration.
func (s *SettingsService) SetModelConfig(cfg domain.ModelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.models == nil {
		return fmt.Errorf("model config store not configured")
	}
	return s.models.Save(cfg)
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// applyEnv overlays environment-provided secrets and endpoints.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if uri := s.getenv(EnvMongoURI); uri != "" {
		settings.Sensor.MongoURI = uri
	}
	if key := s.envAPIKey(settings.Embedding.Provider); key != "" && settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = key
	}
	if key := s.envAPIKey(settings.LLM.Provider); key != "" && settings.LLM.APIKey == "" {
		settings.LLM.APIKey = key
	}
}

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return s.getenv(EnvOpenAIAPIKey)
	case domain.AIProviderAnthropic:
		return s.getenv(EnvAnthropicAPIKey)
	default:
		return ""
	}
}

// resolveBaseURL keeps a custom endpoint for local providers and clears it for cloud ones.
func resolveBaseURL(provider domain.AIProvider, baseURL string) string {
	if !provider.IsLocal() {
		return ""
	}
	if baseURL == "" {
		return domain.DefaultOllamaURL
	}
	return baseURL
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getFloat distinguishes a stored zero from an absent key.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getVariant(defaultVal domain.Variant) domain.Variant {
	variant := domain.Variant(s.configStore.GetString(keyVariant))
	if !variant.IsValid() {
		return defaultVal
	}
	return variant
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
