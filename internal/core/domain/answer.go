package domain

import "strings"

// NoContextPlaceholder replaces the context block when retrieval finds nothing.
const NoContextPlaceholder = "No relevant information found."

// Answer is the response to a free-text question.
type Answer struct {
	// Question is the trimmed question that was asked.
	Question string `json:"question"`

	// Text is the raw model output, unmodified.
	Text string `json:"answer"`

	// Sources are the documents used as context, in rank order.
	Sources []RetrievedDocument `json:"sources,omitempty"`

	// Fields are "Key: value" lines parsed out of Text.
	Fields []AnswerField `json:"fields,omitempty"`

	// Structured is true when Text follows the layout the prompt asks for.
	Structured bool `json:"structured"`
}

// AnswerField is one "Key: value" line of a model answer.
type AnswerField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// maxFieldKeyLength rejects prose sentences that merely contain a colon.
const maxFieldKeyLength = 48

var shopAnswerKeys = map[string]bool{
	"details":        true,
	"shipping cost":  true,
	"shipping fee":   true,
	"stock info":     true,
	"total shopping": true,
	"total belanja":  true,
}

var fixedAnswerPhrases = map[string]bool{
	"item size available":     true,
	"item size not available": true,
	"item stock available":    true,
	"stock item available":    true,
	"item not available":      true,
}

// ParseAnswer extracts "Key: value" lines from model output and reports
// whether the text matches the layout the variant's prompt requests.
func ParseAnswer(v Variant, text string) ([]AnswerField, bool) {
	var fields []AnswerField
	structured := false

	for _, raw := range strings.Split(text, "\n") {
		line := cleanAnswerLine(raw)
		if line == "" {
			continue
		}
		if fixedAnswerPhrases[strings.ToLower(strings.TrimSuffix(line, "."))] {
			structured = true
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || len(key) > maxFieldKeyLength || strings.Contains(key, "//") {
			continue
		}
		fields = append(fields, AnswerField{Key: key, Value: value})

		lower := strings.ToLower(key)
		switch v {
		case VariantShop:
			if shopAnswerKeys[lower] {
				structured = true
			}
		case VariantInventory:
			if strings.HasPrefix(lower, "project ") && strings.HasSuffix(lower, "berisi item berikut") {
				structured = true
			}
		}
	}

	if v == VariantInventory && isBracketList(text) {
		structured = true
	}

	return fields, structured
}

// cleanAnswerLine strips list markers and wrapping quotes.
func cleanAnswerLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*• ")
	line = strings.Trim(line, "\"“”")
	return strings.TrimSpace(line)
}

func isBracketList(text string) bool {
	t := strings.TrimSpace(text)
	return len(t) > 2 && strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]")
}
