// Package answer renders the assistant's answer in a scrollable panel.
package answer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lapak/internal/core/domain"
)

// Panel shows the last answer and, optionally, the retrieved documents.
type Panel struct {
	viewport    viewport.Model
	styles      *styles.Styles
	answer      *domain.Answer
	showSources bool
	width       int
	height      int
}

// NewPanel creates an empty answer panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	p := &Panel{
		viewport: viewport.New(76, 10),
		styles:   s,
		width:    80,
		height:   12,
	}
	p.refresh()
	return p
}

// Update forwards scroll messages to the viewport.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the bordered panel.
func (p *Panel) View() string {
	return p.styles.Panel.Render(p.viewport.View())
}

// SetAnswer replaces the displayed answer and scrolls to the top.
func (p *Panel) SetAnswer(a *domain.Answer) {
	p.answer = a
	p.refresh()
	p.viewport.GotoTop()
}

// Answer returns the displayed answer, or nil.
func (p *Panel) Answer() *domain.Answer {
	return p.answer
}

// ToggleSources shows or hides the retrieved documents.
func (p *Panel) ToggleSources() {
	p.showSources = !p.showSources
	p.refresh()
}

// ShowSources reports whether retrieved documents are displayed.
func (p *Panel) ShowSources() bool {
	return p.showSources
}

// Clear removes the answer.
func (p *Panel) Clear() {
	p.SetAnswer(nil)
}

// SetDimensions sizes the panel including its border.
func (p *Panel) SetDimensions(width, height int) {
	p.width = width
	p.height = height
	// border and horizontal padding
	p.viewport.Width = max(width-4, 10)
	p.viewport.Height = max(height-2, 3)
	p.refresh()
}

// Content returns the unstyled text currently in the panel.
func (p *Panel) Content() string {
	return p.content(false)
}

func (p *Panel) refresh() {
	p.viewport.SetContent(p.content(true))
}

func (p *Panel) content(styled bool) string {
	render := func(st lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return st.Render(s)
	}

	if p.answer == nil {
		return render(p.styles.Muted, "Ask about products, prices, stock, shipping or projects.")
	}

	wrap := lipgloss.NewStyle().Width(p.viewport.Width)
	var b strings.Builder
	b.WriteString(render(p.styles.Muted, "Q: "+p.answer.Question))
	b.WriteString("\n\n")
	for _, line := range strings.Split(p.answer.Text, "\n") {
		if key, value, ok := fieldLine(p.answer.Fields, line); ok {
			line = render(p.styles.FieldKey, key+":") + " " + value
		}
		b.WriteString(wrap.Render(line))
		b.WriteString("\n")
	}

	if p.showSources && len(p.answer.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(render(p.styles.Subtitle, "Sources"))
		b.WriteString("\n")
		for i, src := range p.answer.Sources {
			fmt.Fprintf(&b, "[%d] %s (%.3f)\n", i+1, src.Source, src.Similarity)
			b.WriteString(wrap.Render(render(p.styles.Muted, src.Content)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// fieldLine reports whether line starts with one of the parsed field keys.
func fieldLine(fields []domain.AnswerField, line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, f := range fields {
		if rest, ok := strings.CutPrefix(trimmed, f.Key+":"); ok {
			return f.Key, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}
