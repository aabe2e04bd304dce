package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the catalog documents for retrieval",
	Long: `Embeds the catalog documents into the vector index.

Documents are only added while the index is empty, so catalog changes made
after the first run are not picked up. Use --rebuild to clear the index and
embed the current catalog.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "clear the index and re-embed the current catalog")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	return withServices(cmd, func(svc *Services) error {
		var (
			added int
			err   error
		)
		if indexRebuild {
			added, err = svc.Index.Rebuild(cmd.Context())
		} else {
			added, err = svc.Index.EnsureIndexed(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("index failed: %w", err)
		}

		total, err := svc.Index.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("count index: %w", err)
		}
		if added == 0 {
			cmd.Printf("Index already populated (%d documents).\n", total)
			return nil
		}
		cmd.Printf("Indexed %d documents (%d total).\n", added, total)
		return nil
	})
}
