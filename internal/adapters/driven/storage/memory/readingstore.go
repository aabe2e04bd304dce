package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// Ensure ReadingStore implements the interface.
var _ driven.ReadingStore = (*ReadingStore)(nil)

// ReadingStore is an in-memory implementation of driven.ReadingStore.
type ReadingStore struct {
	mu       sync.RWMutex
	readings []domain.Reading
	closed   bool
}

// NewReadingStore creates a new in-memory reading store.
func NewReadingStore() *ReadingStore {
	return &ReadingStore{}
}

// Insert stores a copy of the reading.
func (s *ReadingStore) Insert(_ context.Context, reading domain.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrReadingStoreUnavailable
	}
	s.readings = append(s.readings, maps.Clone(reading))
	return nil
}

// Readings returns the stored readings in insertion order.
func (s *ReadingStore) Readings() []domain.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Reading, len(s.readings))
	for i, r := range s.readings {
		out[i] = maps.Clone(r)
	}
	return out
}

// Close marks the store closed. Later inserts fail.
func (s *ReadingStore) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
