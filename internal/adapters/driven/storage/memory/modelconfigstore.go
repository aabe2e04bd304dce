package memory

import (
	"sync"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// Ensure ModelConfigStore implements the interface.
var _ driven.ModelConfigStore = (*ModelConfigStore)(nil)

// ModelConfigStore is an in-memory implementation of driven.ModelConfigStore.
type ModelConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.ModelConfig
}

// NewModelConfigStore creates an empty store. The first Load stores the defaults.
func NewModelConfigStore() *ModelConfigStore {
	return &ModelConfigStore{}
}

// Load returns the stored configuration, storing the defaults on first use.
func (s *ModelConfigStore) Load() (domain.ModelConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		def := domain.DefaultModelConfig()
		s.cfg = &def
	}
	return *s.cfg, nil
}

// Save validates and stores the configuration.
func (s *ModelConfigStore) Save(cfg domain.ModelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}

// Path returns the configuration path.
func (s *ModelConfigStore) Path() string {
	return ":memory:"
}
