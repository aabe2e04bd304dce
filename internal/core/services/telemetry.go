package services

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
	"github.com/custodia-labs/lapak/internal/logger"
)

// Ensure TelemetryService implements the interface.
var _ driving.TelemetryService = (*TelemetryService)(nil)

// TelemetryService stores sensor readings with a server-side timestamp.
type TelemetryService struct {
	store driven.ReadingStore
	now   func() time.Time
}

// NewTelemetryService creates a new telemetry service.
func NewTelemetryService(store driven.ReadingStore) *TelemetryService {
	return &TelemetryService{
		store: store,
		now:   time.Now,
	}
}

// Record stamps the reading with the server time and stores it.
// A client-supplied timestamp is overwritten.
func (s *TelemetryService) Record(ctx context.Context, reading domain.Reading) (domain.Reading, error) {
	if len(reading) == 0 {
		return nil, fmt.Errorf("%w: no data received", domain.ErrInvalidInput)
	}
	if s.store == nil {
		return nil, domain.ErrReadingStoreUnavailable
	}

	stamped := maps.Clone(reading)
	stamped[domain.ReadingTimestampField] = s.now().UTC()

	if err := s.store.Insert(ctx, stamped); err != nil {
		return nil, fmt.Errorf("store reading: %w", err)
	}
	logger.Debug("Stored sensor reading with %d fields", len(stamped))
	return stamped, nil
}
