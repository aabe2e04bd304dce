// Package cli implements the lapak command line with cobra.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lapak/internal/app"
	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
	"github.com/custodia-labs/lapak/internal/logger"
)

var version = "dev"

var (
	verbose     bool
	homeFlag    string
	variantFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lapak",
	Short: "Catalog assistant for a small shop or project inventory",
	Long: `lapak keeps a small product catalog in SQLite, indexes a few
natural-language summaries of it in a local vector index, and answers
questions about prices, stock, shipping and projects with a chat model.

State lives in $LAPAK_HOME (default ~/.lapak).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "lapak home directory (default $LAPAK_HOME or ~/.lapak)")
	rootCmd.PersistentFlags().StringVar(&variantFlag, "variant", "", "catalog variant: shop or inventory (default from config)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version printed by "lapak version".
func SetVersion(v string) {
	version = v
}

// Services are the ports behind the assistant commands.
type Services struct {
	Catalog   driving.CatalogService
	Assistant driving.AssistantService
	Index     driving.IndexService
	Settings  driving.SettingsService

	// Web serves the assistant over HTTP on Addr.
	Web  http.Handler
	Addr string

	// Watch, when set, reloads prompt templates until ctx ends.
	Watch func(ctx context.Context) error

	// Close releases the resources behind the services.
	Close func() error
}

// SensorServices are the ports behind "lapak sensor serve".
type SensorServices struct {
	Telemetry driving.TelemetryService
	Web       http.Handler
	Addr      string
	Close     func(ctx context.Context) error
}

// Loaders build services on demand so that commands only open what they use.
var (
	loadServices = openAppServices
	loadSettings = openSettingsService
	loadSensor   = openSensorServices
)

func appOptions() (app.Options, error) {
	opts := app.Options{Home: homeFlag}
	if variantFlag != "" {
		v := domain.Variant(strings.ToLower(variantFlag))
		if !v.IsValid() {
			return opts, fmt.Errorf("%w: %q (want shop or inventory)", domain.ErrUnsupportedVariant, variantFlag)
		}
		opts.Variant = v
	}
	return opts, nil
}

func openAppServices(ctx context.Context) (*Services, error) {
	opts, err := appOptions()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Services{
		Catalog:   a.Catalog,
		Assistant: a.Assistant,
		Index:     a.Index,
		Settings:  a.Config.Settings,
		Web:       a.Handler(),
		Addr:      a.Settings.Server.Addr,
		Watch:     a.Prompts.Watch,
		Close:     a.Close,
	}, nil
}

func openSettingsService() (driving.SettingsService, error) {
	opts, err := appOptions()
	if err != nil {
		return nil, err
	}
	cfg, err := app.OpenConfig(opts)
	if err != nil {
		return nil, err
	}
	return cfg.Settings, nil
}

func openSensorServices(ctx context.Context) (*SensorServices, error) {
	opts, err := appOptions()
	if err != nil {
		return nil, err
	}
	sensor, err := app.OpenSensor(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SensorServices{
		Telemetry: sensor.Telemetry,
		Web:       sensor.Handler(),
		Addr:      sensor.Addr,
		Close:     sensor.Close,
	}, nil
}

// withServices opens the assistant services for the duration of fn.
func withServices(cmd *cobra.Command, fn func(svc *Services) error) error {
	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if svc.Close == nil {
			return
		}
		if err := svc.Close(); err != nil {
			logger.Warn("close services: %v", err)
		}
	}()
	return fn(svc)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
