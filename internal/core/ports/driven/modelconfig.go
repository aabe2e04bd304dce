package driven

import "github.com/custodia-labs/lapak/internal/core/domain"

// ModelConfigStore persists the chat model configuration.
type ModelConfigStore interface {
	// Load returns the stored configuration. When nothing is stored yet,
	// it writes domain.DefaultModelConfig and returns it.
	Load() (domain.ModelConfig, error)

	// Save validates and persists the configuration.
	Save(cfg domain.ModelConfig) error

	// Path returns the configuration file path.
	Path() string
}
