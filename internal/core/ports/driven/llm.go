package driven

import "context"

// LLMService generates answers from a fully assembled prompt.
// This is an optional service; when nil, questions cannot be answered.
//
// Implementations include:
//   - Ollama (local models, the default)
//   - OpenAI (chat completions)
//   - Anthropic (messages)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. It is always sent, so zero means deterministic.
	Temperature float64
}
