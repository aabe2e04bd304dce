package driven

import (
	"context"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// ReadingStore appends sensor readings to a document database.
type ReadingStore interface {
	// Insert stores one reading.
	Insert(ctx context.Context, reading domain.Reading) error

	// Close releases the connection.
	Close(ctx context.Context) error
}
