package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/server"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gadget-server",
		Short:         "Gadget registry API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, args []string) error { return serve() },
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables and exit",
		RunE:  func(cmd *cobra.Command, args []string) error { return migrate() },
	})
	return root
}

func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		err := errors.New("JWT_SECRET environment variable is required")
		slog.Error(err.Error())
		return nil, nil, err
	}
	if cfg.DBPassword == "" {
		err := errors.New("DB_PASSWORD environment variable is required")
		slog.Error(err.Error())
		return nil, nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		return nil, nil, err
	}
	return cfg, db, nil
}

func migrate() error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := server.Migrate(db, server.Plugins()); err != nil {
		slog.Error("migration failed", "error", err)
		return err
	}
	slog.Info("migration completed")
	return nil
}

func serve() error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}

	registry, err := tenant.LoadFromFile(cfg.AppsConfigPath)
	if err != nil {
		slog.Error("failed to load app registry", "path", cfg.AppsConfigPath, "error", err)
		return err
	}
	slog.Info("app registry loaded", "apps", len(registry.All()))

	plugins := server.Plugins()
	if err := server.Migrate(db, plugins); err != nil {
		slog.Error("migration failed", "error", err)
		return err
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(cfg.LogLevel),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := server.New(cfg, db, registry, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-quit:
		slog.Info("shutting down server...")
	case err := <-listenErr:
		slog.Error("server failed to start", "error", err)
	}

	close(cleanupDone)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
