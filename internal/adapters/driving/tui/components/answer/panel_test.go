package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

func sampleAnswer() *domain.Answer {
	return &domain.Answer{
		Question: "Harga kaos?",
		Text:     "Details: Kaos Polos\nItem stock available.",
		Fields:   []domain.AnswerField{{Key: "Details", Value: "Kaos Polos"}},
		Sources: []domain.RetrievedDocument{
			{Source: domain.SourceProductInfo, Content: "Barang yang tersedia:", Similarity: 0.91},
		},
	}
}

func TestPanel_Empty(t *testing.T) {
	p := NewPanel(nil)

	assert.Nil(t, p.Answer())
	assert.Contains(t, p.Content(), "Ask about products")
}

func TestPanel_SetAnswer(t *testing.T) {
	p := NewPanel(nil)
	p.SetAnswer(sampleAnswer())

	content := p.Content()

	assert.Contains(t, content, "Q: Harga kaos?")
	assert.Contains(t, content, "Details: Kaos Polos")
	assert.Contains(t, content, "Item stock available.")
	assert.NotContains(t, content, "Sources")
}

func TestPanel_ToggleSources(t *testing.T) {
	p := NewPanel(nil)
	p.SetAnswer(sampleAnswer())

	p.ToggleSources()

	assert.True(t, p.ShowSources())
	assert.Contains(t, p.Content(), "[1] product_info (0.910)")

	p.ToggleSources()
	assert.False(t, p.ShowSources())
	assert.NotContains(t, p.Content(), "product_info")
}

func TestPanel_Clear(t *testing.T) {
	p := NewPanel(nil)
	p.SetAnswer(sampleAnswer())

	p.Clear()

	assert.Nil(t, p.Answer())
}

func TestPanel_SetDimensions(t *testing.T) {
	p := NewPanel(nil)

	p.SetDimensions(100, 20)
	assert.Equal(t, 96, p.viewport.Width)
	assert.Equal(t, 18, p.viewport.Height)

	p.SetDimensions(5, 2)
	assert.Equal(t, 10, p.viewport.Width)
	assert.Equal(t, 3, p.viewport.Height)
}

func TestFieldLine(t *testing.T) {
	fields := []domain.AnswerField{{Key: "Shipping Cost", Value: "Rp10,000"}}

	key, value, ok := fieldLine(fields, "  Shipping Cost: Rp10,000")
	assert.True(t, ok)
	assert.Equal(t, "Shipping Cost", key)
	assert.Equal(t, "Rp10,000", value)

	_, _, ok = fieldLine(fields, "Terima kasih")
	assert.False(t, ok)
}
