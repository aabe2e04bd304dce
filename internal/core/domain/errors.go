package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedVariant indicates an unknown catalog variant.
	ErrUnsupportedVariant = errors.New("unsupported catalog variant")

	// ErrOutOfStock indicates a requested product has no stock.
	ErrOutOfStock = errors.New("out of stock")

	// ErrLLMUnavailable indicates the chat model is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Retrieval is impossible without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrReadingStoreUnavailable indicates no sensor reading store is configured.
	ErrReadingStoreUnavailable = errors.New("reading store unavailable")
)
