package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/countries-api/internal/config"
	"github.com/deppfellow/countries-api/internal/handler"
	"github.com/deppfellow/countries-api/internal/logger"
	"github.com/deppfellow/countries-api/internal/repository"
	"github.com/deppfellow/countries-api/internal/router"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/deppfellow/countries-api/internal/service"
	"github.com/spf13/cobra"
)

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the countries HTTP API. Configuration is read from COUNTRIES_*
environment variables (and a .env file when present).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if portFlag != "" {
		cfg.Server.Port = portFlag
	}

	return run(cmd.Context(), cfg)
}

// run wires the application and serves until ctx is canceled or an
// interrupt/SIGTERM arrives, then shuts down within the configured timeout.
func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(cfg)
	if err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		srv.Logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newServer builds config → logger → server → repositories → services →
// handlers → router and attaches the router to the HTTP server.
func newServer(cfg *config.Config) (*server.Server, error) {
	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return nil, fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	return srv, nil
}
