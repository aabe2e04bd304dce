package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

func TestExtractDocumentSource(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "lapak://documents/product_info",
			expected: "product_info",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/product_info",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentSource(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCatalogResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns snapshot as JSON", func(t *testing.T) {
		catalog := &mockCatalogService{
			snapshot: &domain.Snapshot{
				Variant:       domain.VariantShop,
				Products:      []domain.Product{{ID: 1, Name: "Kaos Polos"}},
				ShippingRates: []domain.ShippingRate{{City: "Jakarta", Fee: 10000}},
			},
		}
		server, err := NewServer(&Ports{Catalog: catalog})
		require.NoError(t, err)

		result, err := server.handleCatalogResource(ctx, makeReadResourceRequest("lapak://catalog"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Kaos Polos")
		assert.Contains(t, result.Contents[0].Text, "Jakarta")
	})

	t.Run("returns error on snapshot failure", func(t *testing.T) {
		catalog := &mockCatalogService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Catalog: catalog})
		require.NoError(t, err)

		_, err = server.handleCatalogResource(ctx, makeReadResourceRequest("lapak://catalog"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading catalog")
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()
	catalog := &mockCatalogService{
		documents: []domain.CatalogDocument{
			{Source: domain.SourceProductInfo, Content: "Barang yang tersedia:\nKaos Polos."},
			{Source: domain.SourceInstructions, Content: "Jawab dengan singkat."},
		},
	}

	t.Run("returns document content", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: catalog})
		require.NoError(t, err)

		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("lapak://documents/product_info"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "Barang yang tersedia:\nKaos Polos.", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("unknown source returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: catalog})
		require.NoError(t, err)

		_, err = server.handleDocumentResource(ctx, makeReadResourceRequest("lapak://documents/project_info"))

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: catalog})
		require.NoError(t, err)

		_, err = server.handleDocumentResource(ctx, makeReadResourceRequest("lapak://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns error on synthesis failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{err: errors.New("storage error")}})
		require.NoError(t, err)

		_, err = server.handleDocumentResource(ctx, makeReadResourceRequest("lapak://documents/product_info"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "synthesizing documents")
	})
}
