package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// SupportsEmbeddings returns true if the provider can generate embeddings.
func (p AIProvider) SupportsEmbeddings() bool {
	return p == AIProviderOllama || p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.SupportsEmbeddings() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds chat model provider configuration.
// The model name and temperature live in ModelConfig.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name, filled from ModelConfig.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Timeout bounds a single generation request.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings controls how context is gathered for a question.
type RetrievalSettings struct {
	// TopK is the number of documents retrieved per question.
	TopK int

	// Collection is the vector index collection name prefix.
	Collection string
}

// ServerSettings configures the web server.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// AskRate is the sustained rate of model-backed requests per second.
	// Zero disables throttling.
	AskRate float64
}

// SensorSettings configures the sensor ingest service.
type SensorSettings struct {
	// Addr is the listen address.
	Addr string

	// MongoURI is the MongoDB connection string. Empty disables the service.
	MongoURI string

	// Database is the MongoDB database name.
	Database string

	// Collection is the MongoDB collection name.
	Collection string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Variant selects the catalog flavour.
	Variant Variant

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds chat model provider settings.
	LLM LLMSettings

	// Retrieval holds retrieval settings.
	Retrieval RetrievalSettings

	// Server holds web server settings.
	Server ServerSettings

	// Sensor holds sensor ingest settings.
	Sensor SensorSettings
}

// Default setting values.
const (
	DefaultOllamaURL        = "http://localhost:11434"
	DefaultTopK             = 3
	DefaultCollection       = "catalog"
	DefaultServerAddr       = ":5000"
	DefaultAskRate          = 1.0
	DefaultSensorAddr       = ":5001"
	DefaultSensorDatabase   = "sensordb"
	DefaultSensorCollection = "sensor_data"
	DefaultLowStockLimit    = 2
	DefaultLLMTimeout       = 120 * time.Second
)

// DefaultAppSettings returns settings with sensible defaults.
// Both AI providers default to a local Ollama instance.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Variant: VariantShop,
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
			BaseURL:  DefaultOllamaURL,
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			BaseURL:  DefaultOllamaURL,
			Timeout:  DefaultLLMTimeout,
		},
		Retrieval: RetrievalSettings{
			TopK:       DefaultTopK,
			Collection: DefaultCollection,
		},
		Server: ServerSettings{
			Addr:    DefaultServerAddr,
			AskRate: DefaultAskRate,
		},
		Sensor: SensorSettings{
			Addr:       DefaultSensorAddr,
			Database:   DefaultSensorDatabase,
			Collection: DefaultSensorCollection,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "bge-m3",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    DefaultChatModel,
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"bge-m3":            1024,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
