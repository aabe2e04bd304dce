package driving

import "context"

// IndexService keeps the vector index populated with catalog documents.
type IndexService interface {
	// EnsureIndexed adds the catalog documents only when the index is empty.
	// Returns the number of documents added.
	EnsureIndexed(ctx context.Context) (int, error)

	// Rebuild clears the index and adds the current catalog documents.
	Rebuild(ctx context.Context) (int, error)

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (int, error)
}
