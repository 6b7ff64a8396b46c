// Command api runs the filmdesk HTTP API and its database maintenance tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filmdesk/internal/config"
	"filmdesk/internal/database"
	"filmdesk/internal/logging"
	"filmdesk/internal/server"
)

var configPath string

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "filmdesk",
	Short: "Film production management API",
	Long: `filmdesk serves the production management API: projects, script analysis,
budget prediction, schedules, expenses, assets, scenes and the budget copilot.

Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "optional YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)
	rootCmd.AddCommand(migrateCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database if it is missing and apply migrations",
	Long: `Connect with the admin credentials (DB_ADMIN_USER/DB_ADMIN_PASSWORD), create
the application database when it does not exist, then apply all migrations.`,
	RunE: runInitDB,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("Failed to start server", zap.Error(err))
		return err
	}
	defer srv.Close()

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("Server shutdown", zap.Error(err))
	}
	logger.Info("Server exiting")
	return nil
}

func runInitDB(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := database.EnsureDatabaseExists(cmd.Context(), &cfg.Database, logger); err != nil {
		return err
	}
	return migrate(cmd.Context(), cfg, logger)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return migrate(cmd.Context(), cfg, logger)
}

func migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(pool, logger); err != nil {
		return fmt.Errorf("migrate %s: %w", cfg.Database.Redacted(), err)
	}
	return nil
}
