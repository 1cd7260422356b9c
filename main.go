package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carrier-contracts/config"
	"carrier-contracts/logging"
)

var (
	cfg    *config.Config
	logger *zap.SugaredLogger

	logLevel string

	rootCmd = &cobra.Command{
		Use:   "carrier-contracts",
		Short: "📦 Carrier contract viewer and rate calculator",
		Long: `carrier-contracts serves the contract viewer and rate calculator in front of
the contract backend, and offers the same rate grids from the command line.

Running without a subcommand starts the HTTP server.`,
		PersistentPreRunE: initRuntime,
		RunE:              runServe,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(matrixCmd())
	rootCmd.AddCommand(importDriveCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initRuntime loads .env outside production, then the config and the logger
func initRuntime(_ *cobra.Command, _ []string) error {
	// Load .env file in development (ignores error if file doesn't exist).
	// Overload so .env values override system environment variables.
	envLoaded := false
	if os.Getenv("ENV") != "production" {
		envLoaded = godotenv.Overload(".env") == nil
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger = logging.New(logging.Config{
		Level:       level,
		Format:      cfg.LogFormat,
		Development: !cfg.IsProduction(),
	})

	if envLoaded {
		logger.Debugf("Loaded environment variables from .env (overriding system variables)")
	}
	return nil
}
