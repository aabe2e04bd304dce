package driven

import "context"

// VectorIndex stores catalog documents with their embeddings and
// answers nearest-neighbour queries. Backed by chromem-go.
type VectorIndex interface {
	// Add inserts entries into the index.
	Add(ctx context.Context, entries []VectorEntry) error

	// Search finds up to k nearest entries to the query vector, best first.
	// k larger than the index size returns every entry.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Reset removes every entry.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorEntry is a document to index.
type VectorEntry struct {
	ID        string
	Source    string
	Content   string
	Embedding []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	ID      string
	Source  string
	Content string

	// Similarity is the cosine similarity score.
	Similarity float64
}
