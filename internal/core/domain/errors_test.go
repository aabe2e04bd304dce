package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedVariant", ErrUnsupportedVariant},
		{"ErrOutOfStock", ErrOutOfStock},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrVectorIndexUnavailable", ErrVectorIndexUnavailable},
		{"ErrReadingStoreUnavailable", ErrReadingStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("quote: %w", ErrOutOfStock)

	assert.True(t, errors.Is(wrapped, ErrOutOfStock))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "quote: out of stock", wrapped.Error())
}
