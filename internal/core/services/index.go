package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
	"github.com/custodia-labs/lapak/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService embeds the synthesized catalog documents into the vector index.
type IndexService struct {
	catalog     driving.CatalogService
	embedder    driven.EmbeddingService
	vectorIndex driven.VectorIndex
}

// NewIndexService creates a new index service.
func NewIndexService(
	catalog driving.CatalogService,
	embedder driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *IndexService {
	return &IndexService{
		catalog:     catalog,
		embedder:    embedder,
		vectorIndex: vectorIndex,
	}
}

// EnsureIndexed adds the catalog documents only when the index is empty.
// A populated index is left as is, even when the catalog changed since.
func (s *IndexService) EnsureIndexed(ctx context.Context) (int, error) {
	if s.vectorIndex == nil {
		return 0, domain.ErrVectorIndexUnavailable
	}

	count, err := s.vectorIndex.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count index: %w", err)
	}
	if count > 0 {
		logger.Debug("Vector index holds %d documents, skipping indexing", count)
		return 0, nil
	}
	return s.addDocuments(ctx)
}

// Rebuild clears the index and adds the current catalog documents.
func (s *IndexService) Rebuild(ctx context.Context) (int, error) {
	if s.vectorIndex == nil {
		return 0, domain.ErrVectorIndexUnavailable
	}
	if err := s.vectorIndex.Reset(ctx); err != nil {
		return 0, fmt.Errorf("reset index: %w", err)
	}
	return s.addDocuments(ctx)
}

// Count returns the number of indexed documents.
func (s *IndexService) Count(ctx context.Context) (int, error) {
	if s.vectorIndex == nil {
		return 0, domain.ErrVectorIndexUnavailable
	}
	return s.vectorIndex.Count(ctx)
}

func (s *IndexService) addDocuments(ctx context.Context) (int, error) {
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Indexing")
	docs, err := s.catalog.Documents(ctx)
	if err != nil {
		return 0, err
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed documents: %w", err)
	}
	if len(embeddings) != len(docs) {
		return 0, fmt.Errorf("embed documents: got %d vectors for %d documents", len(embeddings), len(docs))
	}

	entries := make([]driven.VectorEntry, len(docs))
	for i, d := range docs {
		entries[i] = driven.VectorEntry{
			ID:        uuid.NewString(),
			Source:    d.Source,
			Content:   d.Content,
			Embedding: embeddings[i],
		}
		logger.Debug("Document %s (%s): %d chars", entries[i].ID, d.Source, len(d.Content))
	}

	if err := s.vectorIndex.Add(ctx, entries); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	logger.Info("Indexed %d catalog documents with %s", len(entries), s.embedder.ModelName())
	return len(entries), nil
}
