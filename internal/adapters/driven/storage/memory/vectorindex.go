package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a brute-force in-memory implementation of driven.VectorIndex.
type VectorIndex struct {
	mu      sync.RWMutex
	entries []driven.VectorEntry
}

// NewVectorIndex creates an empty in-memory vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Add appends entries to the index.
func (v *VectorIndex) Add(_ context.Context, entries []driven.VectorEntry) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = append(v.entries, entries...)
	return nil
}

// Search ranks every entry by cosine similarity and returns the best k.
func (v *VectorIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(v.entries))
	for _, e := range v.entries {
		hits = append(hits, driven.VectorHit{
			ID:         e.ID,
			Source:     e.Source,
			Content:    e.Content,
			Similarity: cosine(query, e.Embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k < len(hits) {
		hits = hits[:max(k, 0)]
	}
	return hits, nil
}

// Count returns the number of entries.
func (v *VectorIndex) Count(_ context.Context) (int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries), nil
}

// Reset removes every entry.
func (v *VectorIndex) Reset(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = nil
	return nil
}

// Close is a no-op for the memory index.
func (v *VectorIndex) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
