package driven

import "github.com/custodia-labs/lapak/internal/core/domain"

// PromptStore provides access to answer prompt templates.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Placeholders substituted into answer templates.
const (
	PlaceholderContext  = "{context}"
	PlaceholderQuestion = "{question}"
)

// Well-known prompt names.
const (
	// PromptAnswerShop answers shop questions and computes cart totals.
	PromptAnswerShop = "answer_shop"

	// PromptAnswerInventory answers project and stock questions.
	PromptAnswerInventory = "answer_inventory"
)

// AnswerPromptName returns the answer prompt used by a variant.
func AnswerPromptName(v domain.Variant) string {
	if v == domain.VariantInventory {
		return PromptAnswerInventory
	}
	return PromptAnswerShop
}
