package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lapak/internal/adapters/driving/tui"
	"github.com/custodia-labs/lapak/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch an interactive question-and-answer session with the catalog assistant.

Controls:
  Enter    - Ask
  ↑/↓ PgUp - Scroll the answer
  Ctrl+S   - Show retrieved documents
  Ctrl+L   - Clear
  Esc      - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	return withServices(cmd, func(svc *Services) error {
		if _, err := svc.Index.EnsureIndexed(cmd.Context()); err != nil {
			logger.Warn("index catalog: %v", err)
		}

		app, err := tui.NewApp(&tui.Ports{
			Assistant: svc.Assistant,
			Catalog:   svc.Catalog,
		})
		if err != nil {
			return fmt.Errorf("failed to create TUI: %w", err)
		}
		app.WithContext(cmd.Context())

		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}
