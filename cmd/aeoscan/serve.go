package main

import (
	"fmt"

	"github.com/answerlens/aeoscan/app"
	"github.com/answerlens/aeoscan/internal/logging"
	"github.com/answerlens/aeoscan/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr  string
	serveDebug bool
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		Long: `Start an HTTP server exposing the analysis pipeline.

Endpoints:
  GET  /healthz      - liveness probe
  GET  /metrics      - Prometheus metrics
  POST /api/analyze  - analyze a page

Examples:
  aeoscan serve
  aeoscan serve --addr :9090`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", ":8080",
		"Listen address")
	cmd.Flags().BoolVar(&serveDebug, "debug", false,
		"Enable debug logging")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := logging.NewServer(serveDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	usecase := app.NewAnalyzeUseCase(logger)
	srv := server.New(usecase, logger)

	logger.Info("starting server", zap.String("addr", serveAddr))
	return srv.Run(serveAddr)
}
