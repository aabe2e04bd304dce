package domain

import "fmt"

// DefaultChatModel is the model written to a fresh model configuration.
const DefaultChatModel = "hf.co/ojisetyawan/gemma2-9b-cpt-sahabatai-v1-instruct-Q4_K_M-GGUF:latest"

// ModelConfig is the persisted chat model configuration.
type ModelConfig struct {
	// Model is the chat model identifier.
	Model string `json:"model"`

	// Temperature controls sampling. Zero is deterministic.
	Temperature float64 `json:"temperature"`
}

// DefaultModelConfig returns the configuration written on first start.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Model:       DefaultChatModel,
		Temperature: 0,
	}
}

// Validate checks the configuration values.
func (c ModelConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2, got %v", ErrInvalidInput, c.Temperature)
	}
	return nil
}
