package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/movelabhq/movelab"
	"github.com/movelabhq/movelab/internal/config"
	"github.com/movelabhq/movelab/internal/log"
	"github.com/spf13/cobra"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This allows AI assistants to search workshops, read step content and request
code explanations. Configuration is loaded from environment variables and
the .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// stdout carries the MCP protocol, so logs must go to stderr as JSON.
	logger := log.NewLoggerWithWriter(os.Stderr, config.LogFormatJSON, cfg.LogLevel())

	logger.Slog().Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	client, err := movelab.New(movelab.WithConfig(cfg), movelab.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create movelab client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Slog().Error("failed to close movelab client", slog.Any("error", err))
		}
	}()

	return client.MCPServer(version).ServeStdio()
}
