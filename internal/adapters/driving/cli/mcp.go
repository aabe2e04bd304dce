package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lapak/internal/adapters/driving/mcp"
	"github.com/custodia-labs/lapak/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools: ask, search_products, quote, low_stock.
Resources: lapak://catalog, lapak://documents/{source}.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  lapak mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  lapak mcp serve --port 8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "lapak": {
        "command": "/path/to/lapak",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	return withServices(cmd, func(svc *Services) error {
		// Catalog tools work without a model, so an indexing failure
		// only affects the ask tool.
		if _, err := svc.Index.EnsureIndexed(cmd.Context()); err != nil {
			logger.Warn("index catalog: %v", err)
		}

		server, err := mcp.NewServer(&mcp.Ports{
			Catalog:   svc.Catalog,
			Assistant: svc.Assistant,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			cmd.Printf("MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})
}
