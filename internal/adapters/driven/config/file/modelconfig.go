package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// Ensure ModelConfigStore implements the interface.
var _ driven.ModelConfigStore = (*ModelConfigStore)(nil)

// ModelConfigStore keeps the chat model configuration in model.json.
type ModelConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewModelConfigStore creates a store for <dir>/model.json.
// If dir is empty, defaults to the lapak home directory.
func NewModelConfigStore(dir string) (*ModelConfigStore, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	return &ModelConfigStore{filePath: filepath.Join(dir, "model.json")}, nil
}

// Load reads model.json. When the file does not exist it is written once
// with domain.DefaultModelConfig. Unknown keys are rejected.
func (s *ModelConfigStore) Load() (domain.ModelConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		cfg := domain.DefaultModelConfig()
		if err := s.write(cfg); err != nil {
			return domain.ModelConfig{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return domain.ModelConfig{}, fmt.Errorf("read model config: %w", err)
	}

	var cfg domain.ModelConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return domain.ModelConfig{}, fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.ModelConfig{}, fmt.Errorf("%s: %w", s.filePath, err)
	}
	return cfg, nil
}

// Save validates and writes the configuration.
func (s *ModelConfigStore) Save(cfg domain.ModelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(cfg)
}

// Path returns the model configuration file path.
func (s *ModelConfigStore) Path() string {
	return s.filePath
}

func (s *ModelConfigStore) write(cfg domain.ModelConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model config: %w", err)
	}
	if err := os.WriteFile(s.filePath, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("write model config: %w", err)
	}
	return nil
}
