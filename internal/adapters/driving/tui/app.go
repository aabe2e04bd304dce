package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/components/answer"
	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lapak/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lapak/internal/core/domain"
)

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input  *input.QuestionInput
	panel  *answer.Panel
	status *status.Bar

	// header summarises the catalog once loaded.
	header string

	// asking is true while a question is in flight.
	asking bool

	err error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		input:  input.NewQuestionInput(s, "Contoh: berapa ongkir ke Bandung?"),
		panel:  answer.NewPanel(s),
		status: status.NewBar(s, km),
		width:  80,
		height: 24,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("lapak"),
		a.input.Init(),
	}
	if a.ports.Catalog != nil {
		cmds = append(cmds, a.loadCatalog())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.AskRequested:
		a.asking = true
		a.err = nil
		a.status.SetState(status.StateAsking)
		return a, a.ask(msg.Question)

	case messages.AnswerReceived:
		a.asking = false
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.err = nil
		a.panel.SetAnswer(msg.Answer)
		a.status.SetState(status.StateAnswered)
		a.status.SetStructured(msg.Answer.Structured)
		a.input.Reset()
		return a, nil

	case messages.CatalogLoaded:
		if msg.Err != nil {
			a.header = a.styles.Error.Render("catalog unavailable: " + msg.Err.Error())
			return a, nil
		}
		a.header = summarise(msg.Snapshot)
		a.status.SetVariant(msg.Snapshot.Variant.String())
		return a, nil
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(k, a.keymap.Ask):
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.asking {
			return a, nil
		}
		return a, func() tea.Msg { return messages.AskRequested{Question: question} }

	case keymap.Matches(k, a.keymap.Clear):
		a.input.Reset()
		a.panel.Clear()
		a.status.Clear()
		a.err = nil
		return a, nil

	case keymap.Matches(k, a.keymap.ToggleSources):
		a.panel.ToggleSources()
		return a, nil

	case keymap.Matches(k, a.keymap.ScrollUp), keymap.Matches(k, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.panel, cmd = a.panel.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	title := a.styles.Title.Render("lapak") + " " + a.styles.Muted.Render("catalog assistant")
	parts := []string{title}
	if a.header != "" {
		parts = append(parts, a.header)
	}
	parts = append(parts, "", a.input.View(), a.panel.View(), a.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.input.SetWidth(width)
	a.status.SetWidth(width)

	// title, header, spacer, bordered input and status bar
	used := 7
	a.panel.SetDimensions(width, max(height-used, 5))
}

func (a *App) ask(question string) tea.Cmd {
	ctx := a.ctx
	assistant := a.ports.Assistant
	return func() tea.Msg {
		ans, err := assistant.Ask(ctx, question)
		return messages.AnswerReceived{Question: question, Answer: ans, Err: err}
	}
}

func (a *App) loadCatalog() tea.Cmd {
	ctx := a.ctx
	catalog := a.ports.Catalog
	return func() tea.Msg {
		snap, err := catalog.Snapshot(ctx)
		return messages.CatalogLoaded{Snapshot: snap, Err: err}
	}
}

func summarise(snap *domain.Snapshot) string {
	if snap.Variant == domain.VariantInventory {
		return fmt.Sprintf("%d products, %d projects", len(snap.Products), len(snap.Projects))
	}
	return fmt.Sprintf("%d products, %d shipping rates", len(snap.Products), len(snap.ShippingRates))
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Asking reports whether a question is in flight.
func (a *App) Asking() bool {
	return a.asking
}

// Answer returns the displayed answer, or nil.
func (a *App) Answer() *domain.Answer {
	return a.panel.Answer()
}
