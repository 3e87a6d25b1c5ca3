package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP/WebSocket control surface",
		Long: `Starts the control surface on PORT. Every intent is exposed under /v1,
the current state at GET /v1/state, state changes as WebSocket events at
/v1/ws and API docs under /swagger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	addr := fmt.Sprintf(":%d", a.cfg.Port)

	a.logger.Info("starting facerecon control surface",
		slog.String("environment", a.cfg.Environment),
		slog.Int("port", a.cfg.Port),
		slog.String("backend", a.cfg.TargetName()),
		slog.String("base_url", a.client.BaseURL()),
	)

	router := api.NewRouter(a.logger, &api.Dependencies{
		Session:      a.session,
		BackendURL:   a.client.BaseURL(),
		BackendName:  a.cfg.TargetName(),
		MaxImageDim:  a.cfg.MaxImageDim,
		RateLimitMax: a.cfg.RateLimitMax,
		Host:         fmt.Sprintf("localhost:%d", a.cfg.Port),
	})
	router.Setup()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Probe the backend once so observers start with a known health
	go a.session.CheckHealth(ctx)

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	a.logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		a.logger.Error("shutdown error", slog.Any("error", err))
	}

	a.logger.Info("server stopped")
	return nil
}
