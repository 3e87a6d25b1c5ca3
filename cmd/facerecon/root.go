package main

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/config"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/coordinator"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/gateway"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/store"
)

// app is the composition root shared by every command.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	client    *gateway.Client
	session   *store.Store
	presenter *handler.Presenter
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "facerecon",
		Short: "Client for the facerecon face recognition service",
		Long: `facerecon talks to a remote face recognition backend. It can recognize a
face in a photo, manage the registered user directory, and serve a local
HTTP/WebSocket control surface for presentation layers.

The backend is chosen with FACERECON_TARGET (emulator, physical, render) or
FACERECON_API_URL, from the environment or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cobra.OnInitialize(func() {
		// .env file is optional, don't fail if not found
		_ = godotenv.Load()
	})

	root.PersistentFlags().String("target", "", "Backend target: emulator, physical or render (overrides FACERECON_TARGET)")
	root.PersistentFlags().String("api-url", "", "Backend base URL (overrides the target)")
	root.PersistentFlags().StringP("output", "o", outputJSON, "Output format: json or yaml")

	root.AddCommand(
		newServeCmd(a),
		newHealthCmd(a),
		newRecognizeCmd(a),
		newUsersCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := validateOutput(mustGetString(cmd, "output")); err != nil {
		return err
	}

	cfg, err := config.LoadWithOverrides(config.Overrides{
		Target: mustGetString(cmd, "target"),
		APIURL: mustGetString(cmd, "api-url"),
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// stdout is reserved for command output
	logger := config.NewLogger(cfg.Environment, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	client := gateway.NewClient(gateway.Config{
		BaseURL: cfg.BaseURL(),
		Timeout: cfg.Timeout,
	})
	session := store.New(
		coordinator.New(client, logger),
		store.Config{NoticeTTL: cfg.NoticeTTL},
		logger,
	)

	a.cfg = cfg
	a.logger = logger
	a.client = client
	a.session = session
	a.presenter = handler.NewPresenter(client.BaseURL())

	logger.Debug("backend selected",
		slog.String("target", cfg.TargetName()),
		slog.String("base_url", client.BaseURL()),
	)
	return nil
}

func (a *app) close() {
	if a.session != nil {
		a.session.Close()
	}
}
