package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lapak/internal/logger"
)

var (
	askJSON    bool
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Long: `Retrieves the catalog documents closest to the question and asks the
chat model to answer from them. The model's text is printed unmodified.

The question may be piped on stdin:
  echo "ongkir ke Bandung berapa?" | lapak ask`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer, sources and parsed fields as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the retrieved documents after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question, err := readQuestion(cmd, args)
	if err != nil {
		return err
	}

	return withServices(cmd, func(svc *Services) error {
		if n, err := svc.Index.EnsureIndexed(cmd.Context()); err != nil {
			return fmt.Errorf("index catalog: %w", err)
		} else if n > 0 {
			logger.Info("Indexed %d catalog documents", n)
		}

		answer, err := svc.Assistant.Ask(cmd.Context(), question)
		if err != nil {
			return err
		}
		if askJSON {
			return printJSON(cmd, answer)
		}

		cmd.Println(answer.Text)
		if askSources && len(answer.Sources) > 0 {
			cmd.Println()
			cmd.Println("Sources:")
			for i, src := range answer.Sources {
				cmd.Printf("  [%d] %s (%.3f)\n", i+1, src.Source, src.Similarity)
			}
		}
		return nil
	})
}

// readQuestion joins the arguments, or reads stdin when it is not a terminal.
func readQuestion(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no question given: pass it as arguments or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read question: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
