package driving

import (
	"context"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// TelemetryService ingests sensor readings.
type TelemetryService interface {
	// Record stamps the reading with the server time and stores it.
	// An empty reading fails with domain.ErrInvalidInput.
	Record(ctx context.Context, reading domain.Reading) (domain.Reading, error)
}
