package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lapak/internal/adapters/driving/web"
	"github.com/custodia-labs/lapak/internal/logger"
)

var (
	serveAddr  string
	sensorAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant web page and /ask API",
	Long: `Seeds and indexes the catalog, then serves:

  GET  /             catalog page with search and question forms
  POST /             form submission (search_query and/or question)
  POST /ask          JSON {"question": "..."} -> {"question", "answer"}
  GET  /favicon.ico  204

Prompt templates in $LAPAK_HOME/prompts are reloaded when edited.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Sensor ingest service",
}

var sensorServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept sensor readings and store them in MongoDB",
	Long: `Serves POST /ambatukam: each JSON object is stamped with a server-side
timestamp and inserted into MongoDB.

The connection string comes from sensor.mongo_uri in config.toml or the
MONGO_URI environment variable.`,
	Args: cobra.NoArgs,
	RunE: runSensorServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :5000)")
	sensorServeCmd.Flags().StringVar(&sensorAddr, "addr", "", "listen address (default from config, :5001)")
	sensorCmd.AddCommand(sensorServeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sensorCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	return withServices(cmd, func(svc *Services) error {
		logger.Section("Indexing catalog")
		added, err := svc.Index.EnsureIndexed(cmd.Context())
		if err != nil {
			return fmt.Errorf("index catalog: %w", err)
		}
		logger.Info("Added %d documents to the vector index", added)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if svc.Watch != nil {
			go func() {
				if err := svc.Watch(ctx); err != nil {
					logger.Warn("prompt reload disabled: %v", err)
				}
			}()
		}

		addr := serveAddr
		if addr == "" {
			addr = svc.Addr
		}
		cmd.Printf("Listening on %s\n", addr)
		return web.ListenAndServe(ctx, addr, svc.Web)
	})
}

func runSensorServe(cmd *cobra.Command, _ []string) error {
	svc, err := loadSensor(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if svc.Close == nil {
			return
		}
		if err := svc.Close(context.Background()); err != nil {
			logger.Warn("close sensor store: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := sensorAddr
	if addr == "" {
		addr = svc.Addr
	}
	cmd.Printf("Listening on %s\n", addr)
	return web.ListenAndServe(ctx, addr, svc.Web)
}
