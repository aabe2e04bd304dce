package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.Secondary)
	assert.NotEmpty(t, theme.Error)
	assert.NotEqual(t, theme.Success, theme.Warning)
}

func TestNewStyles(t *testing.T) {
	t.Run("nil theme uses default", func(t *testing.T) {
		s := NewStyles(nil)
		assert.Equal(t, DefaultTheme(), s.Theme())
	})

	t.Run("custom theme is kept", func(t *testing.T) {
		theme := DefaultTheme()
		theme.Primary = "#000000"

		s := NewStyles(theme)

		assert.Equal(t, theme, s.Theme())
		assert.NotEmpty(t, s.Title.Render("Lapak"))
	})
}

func TestDefaultStyles_RenderKeepsText(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.FieldKey.Render("Details"), "Details")
	assert.Contains(t, s.Panel.Render("answer"), "answer")
	assert.Contains(t, s.StatusBar.Render("Ready"), "Ready")
}
