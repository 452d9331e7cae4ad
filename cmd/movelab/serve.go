package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/movelabhq/movelab"
	"github.com/movelabhq/movelab/internal/config"
	"github.com/movelabhq/movelab/internal/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                Server host to bind to (default: 0.0.0.0)
  PORT                Server port to listen on (default: 8080)
  DATA_DIR            Data directory (default: ~/.movelab)
  DB_URL              Database URL (default: sqlite:///{data_dir}/movelab.db)
  LOG_LEVEL           Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT          Log format: pretty, json (default: pretty)
  API_KEYS            Comma-separated API keys required for write requests
  CORS_ORIGINS        Comma-separated allowed CORS origins (default: *)
  HIGHLIGHT_STYLE     Syntax highlighting style (default: github)
  MAX_IMAGE_BYTES     Upload size limit for step images (default: 5242880)

  EXPLAIN_*           AI explanation endpoint configuration
    BASE_URL          Base URL (e.g., https://api.openai.com/v1)
    MODEL             Model identifier (default: gpt-4o-mini)
    API_KEY           API key; explanations are disabled when unset
    TIMEOUT           Request timeout in seconds (default: 60)
    MAX_RETRIES       Retry attempts (default: 3)

  CHAIN_NODE_URL      Chain node REST URL; explorer is disabled when unset
  CHAIN_NETWORK       Target network name (default: devnet)
  TOOLCHAIN_BINARY    Move compiler binary (default: move)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.NewLogger(cfg)
	logger.SetDefault()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.Slog().LogAttrs(context.Background(), slog.LevelInfo, "starting movelab", attrs...)

	client, err := movelab.New(movelab.WithConfig(cfg), movelab.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create movelab client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Slog().Error("failed to close movelab client", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return client.Server(version).Start(ctx)
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
