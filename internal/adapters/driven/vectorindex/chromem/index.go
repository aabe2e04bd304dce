// Package chromem provides the vector index backed by chromem-go, an
// embeddable vector database with optional directory persistence.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// metadataSource is the document metadata key holding the catalog source label.
const metadataSource = "source"

// errNoEmbedder is returned if chromem ever tries to embed text itself.
// Documents and queries always arrive with precomputed embeddings.
var errNoEmbedder = errors.New("chromem: embeddings must be supplied by the caller")

// Config holds the index configuration.
type Config struct {
	// Dir is the persistence directory. Empty keeps the index in memory.
	Dir string

	// Collection is the collection name.
	Collection string

	// Compress gzips persisted documents.
	Compress bool
}

// Index is a chromem-go collection implementing driven.VectorIndex.
type Index struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	name       string
}

// New opens or creates the collection described by cfg.
func New(cfg Config) (*Index, error) {
	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollection
	}

	var db *chromem.DB
	if cfg.Dir == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(cfg.Dir, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("opening vector index at %s: %w", cfg.Dir, err)
		}
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, noEmbedding)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", cfg.Collection, err)
	}

	return &Index{
		db:         db,
		collection: collection,
		name:       cfg.Collection,
	}, nil
}

// Add inserts entries into the collection.
func (i *Index) Add(ctx context.Context, entries []driven.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(entries))
	for n, e := range entries {
		if len(e.Embedding) == 0 {
			return fmt.Errorf("%w: entry %s has no embedding", domain.ErrInvalidInput, e.ID)
		}
		docs[n] = chromem.Document{
			ID:        e.ID,
			Metadata:  map[string]string{metadataSource: e.Source},
			Embedding: e.Embedding,
			Content:   e.Content,
		}
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	if err := i.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}
	return nil
}

// Search returns up to k entries most similar to query, best first.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// chromem rejects k larger than the collection.
	k = min(k, i.collection.Count())
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	results, err := i.collection.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	hits := make([]driven.VectorHit, len(results))
	for n, r := range results {
		hits[n] = driven.VectorHit{
			ID:         r.ID,
			Source:     r.Metadata[metadataSource],
			Content:    r.Content,
			Similarity: float64(r.Similarity),
		}
	}
	return hits, nil
}

// Count returns the number of documents in the collection.
func (i *Index) Count(_ context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.collection.Count(), nil
}

// Reset drops and recreates the collection.
func (i *Index) Reset(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.db.DeleteCollection(i.name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", i.name, err)
	}
	collection, err := i.db.GetOrCreateCollection(i.name, nil, noEmbedding)
	if err != nil {
		return fmt.Errorf("recreating collection %s: %w", i.name, err)
	}
	i.collection = collection
	return nil
}

// Close is a no-op; persistent collections are written on every change.
func (i *Index) Close() error {
	return nil
}

func noEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errNoEmbedder
}
