package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lapak/internal/core/domain"
)

func newTestSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, memory.NewModelConfigStore(), nil)
	service.getenv = func(key string) string { return env[key] }
	return service, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Variant, settings.Variant)
	assert.Equal(t, defaults.Embedding, settings.Embedding)
	assert.Equal(t, defaults.Retrieval, settings.Retrieval)
	assert.Equal(t, defaults.Server, settings.Server)
	assert.Equal(t, defaults.Sensor, settings.Sensor)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, domain.DefaultChatModel, settings.LLM.Model)
	assert.Equal(t, domain.DefaultOllamaURL, settings.LLM.BaseURL)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set("catalog.variant", "inventory")
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("retrieval.top_k", int64(5))
	_ = store.Set("server.ask_rate", 0.0)
	_ = store.Set("sensor.database", "iot")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.VariantInventory, settings.Variant)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, 5, settings.Retrieval.TopK)
	assert.Zero(t, settings.Server.AskRate)
	assert.Equal(t, "iot", settings.Sensor.Database)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set("catalog.variant", "grocery")
	_ = store.Set("llm.provider", "invalid_provider")
	_ = store.Set("retrieval.top_k", int64(-1))

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Variant, settings.Variant)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.Retrieval.TopK, settings.Retrieval.TopK)
}

func TestSettingsService_Get_EnvironmentOverrides(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{
		EnvMongoURI:        "mongodb://env:27017",
		EnvOpenAIAPIKey:    "sk-env",
		EnvAnthropicAPIKey: "sk-ant-env",
	})
	_ = store.Set("sensor.mongo_uri", "mongodb://stored:27017")
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("llm.provider", "anthropic")
	_ = store.Set("llm.api_key", "sk-ant-stored")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "mongodb://env:27017", settings.Sensor.MongoURI)
	assert.Equal(t, "sk-env", settings.Embedding.APIKey)
	// A stored key wins over the environment.
	assert.Equal(t, "sk-ant-stored", settings.LLM.APIKey)
}

func TestSettingsService_Save(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings := domain.DefaultAppSettings()
	settings.Variant = domain.VariantInventory
	settings.LLM.Provider = domain.AIProviderAnthropic
	settings.LLM.APIKey = "sk-ant-test"
	settings.Server.Addr = ":8080"
	settings.Server.AskRate = 2.5
	settings.Sensor.MongoURI = "mongodb://localhost:27017"

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.VariantInventory, retrieved.Variant)
	assert.Equal(t, domain.AIProviderAnthropic, retrieved.LLM.Provider)
	assert.Equal(t, "sk-ant-test", retrieved.LLM.APIKey)
	assert.Equal(t, ":8080", retrieved.Server.Addr)
	assert.InDelta(t, 2.5, retrieved.Server.AskRate, 0.0001)
	assert.Equal(t, "mongodb://localhost:27017", retrieved.Sensor.MongoURI)
}

func TestSettingsService_Save_DoesNotPersistEnvSecrets(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{EnvOpenAIAPIKey: "sk-env"})

	require.NoError(t, service.SetVariant(domain.VariantInventory))
	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))

	_, exists := store.Get("embedding.api_key")
	assert.False(t, exists)
}

func TestSettingsService_SetVariant(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	require.NoError(t, service.SetVariant(domain.VariantInventory))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.VariantInventory, settings.Variant)

	assert.ErrorIs(t, service.SetVariant("grocery"), domain.ErrUnsupportedVariant)
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "", "sk-test"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "nomic-embed-text", "http://gpu:11434", ""))
	settings, err = service.Get()
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://gpu:11434", settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbeddingProvider_Errors(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	assert.Error(t, service.SetEmbeddingProvider("bogus", "", "", ""))
	assert.Error(t, service.SetEmbeddingProvider(domain.AIProviderAnthropic, "", "", "sk"))
	assert.Error(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "", ""))
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "", ""))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOllamaURL, settings.LLM.BaseURL)

	assert.Error(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", ""))
	assert.Error(t, service.SetLLMProvider("bogus", "", ""))
}

func TestSettingsService_ModelConfig(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	cfg, err := service.ModelConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModelConfig(), cfg)

	require.NoError(t, service.SetModelConfig(domain.ModelConfig{Model: "llama3", Temperature: 0.2}))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "llama3", settings.LLM.Model)

	assert.ErrorIs(t, service.SetModelConfig(domain.ModelConfig{Model: "x", Temperature: 3}), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	assert.NoError(t, service.ValidateEmbeddingConfig())
	assert.NoError(t, service.ValidateLLMConfig())

	boom := errors.New("unreachable")
	validator := &mockValidator{llmErr: boom}
	service = NewSettingsService(memory.NewConfigStore(), memory.NewModelConfigStore(), validator)

	assert.NoError(t, service.ValidateEmbeddingConfig())
	assert.ErrorIs(t, service.ValidateLLMConfig(), boom)
	require.NotNil(t, validator.lastLLM)
	assert.Equal(t, domain.DefaultChatModel, validator.lastLLM.Model)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
