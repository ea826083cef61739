package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/VerticalAgents/mischa-os-sub004/internal/api"
	"github.com/VerticalAgents/mischa-os-sub004/internal/api/handlers"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/redis"
)

// apiCmd starts the REST API server.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the analytics API server",
	Long: `Starts the REST API server for the turnover analytics engine.

Endpoints:
  GET  /health                        - Health check
  GET  /health/db                     - Database pool health
  GET  /api/giro/consolidated         - Consolidated client records
  GET  /api/giro/ranking              - Turnover ranking
  GET  /api/giro/regional             - Per-route rollup
  GET  /api/giro/overview             - Portfolio overview
  GET  /api/giro/temporal/{clientID}  - Weekly series for one client
  GET  /api/giro/forecast/{clientID}  - Next-period forecast
  POST /api/giro/refresh              - Rebuild the consolidated snapshot

Example:
  go run ./cmd/giro api
  go run ./cmd/giro api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	limiter := redis.NewRateLimiter(rt.rdb, "giro")
	giroHandler := handlers.NewGiroHandler(rt.engine, limiter, rt.log)
	router := api.NewRouter(giroHandler, rt.db, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		rt.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
