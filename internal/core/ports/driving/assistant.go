package driving

import (
	"context"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// AssistantService answers free-text questions about the catalog.
type AssistantService interface {
	// Ask retrieves context for question and asks the chat model.
	// A blank question fails with domain.ErrInvalidInput.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
