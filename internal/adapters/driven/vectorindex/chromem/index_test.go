package chromem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

func testEntries() []driven.VectorEntry {
	return []driven.VectorEntry{
		{ID: "a", Source: domain.SourceProductInfo, Content: "products", Embedding: []float32{1, 0, 0}},
		{ID: "b", Source: domain.SourceShippingInfo, Content: "shipping", Embedding: []float32{0, 1, 0}},
		{ID: "c", Source: domain.SourceInstructions, Content: "instructions", Embedding: []float32{0, 0, 1}},
	}
}

func TestIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx, err := New(Config{Collection: "test"})
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, testEntries()))

	hits, err := idx.Search(ctx, []float32{0.1, 0.9, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "b", hits[0].ID)
	assert.Equal(t, domain.SourceShippingInfo, hits[0].Source)
	assert.Equal(t, "shipping", hits[0].Content)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestIndex_SearchClampsK(t *testing.T) {
	ctx := context.Background()
	idx, err := New(Config{})
	require.NoError(t, err)

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, idx.Add(ctx, testEntries()[:1]))
	hits, err = idx.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndex_AddRejectsMissingEmbedding(t *testing.T) {
	idx, err := New(Config{})
	require.NoError(t, err)

	err = idx.Add(context.Background(), []driven.VectorEntry{{ID: "x", Content: "no vector"}})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_CountAndReset(t *testing.T) {
	ctx := context.Background()
	idx, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, testEntries()))

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, idx.Reset(ctx))
	n, err = idx.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, idx.Add(ctx, testEntries()[:2]))
	n, err = idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIndex_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	idx, err := New(Config{Dir: dir, Collection: "catalog_shop"})
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, testEntries()))
	require.NoError(t, idx.Close())

	reopened, err := New(Config{Dir: dir, Collection: "catalog_shop"})
	require.NoError(t, err)

	n, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	hits, err := reopened.Search(ctx, []float32{0, 0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c", hits[0].ID)
	assert.Equal(t, domain.SourceInstructions, hits[0].Source)
}
