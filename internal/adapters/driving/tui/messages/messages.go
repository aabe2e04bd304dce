// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/lapak/internal/core/domain"
)

// AskRequested is sent when the user submits a question.
type AskRequested struct {
	Question string
}

// AnswerReceived carries the assistant's answer back to the model.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// CatalogLoaded carries the catalog summary shown in the header.
type CatalogLoaded struct {
	Snapshot *domain.Snapshot
	Err      error
}
