package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/bjjournal/cliparse"
	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/router"
	"github.com/danielhkuo/bjjournal/views"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "bjjournal",
		Short:         "BJJ training journal and move-map server",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cliparse.RegisterFlags(rootCmd.PersistentFlags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database file and print row counts",
		RunE:  runMigrate,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "bjjournal", version)
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

// loadConfig resolves config from the root flags and installs the logger
func loadConfig(cmd *cobra.Command) (cliparse.Config, error) {
	cfg, err := cliparse.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if cfg.ConfigFile != "" {
		slog.Info("config file loaded", "path", cfg.ConfigFile)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg cliparse.Config) (*db.SQLiteStore, error) {
	store, err := db.Open(ctx, cfg.DatabasePath, db.WithMapTransitionPruning(cfg.PruneMapTransitions))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	slog.Info("Database schema ready", "path", cfg.DatabasePath)
	return store, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	pages, err := views.New()
	if err != nil {
		return err
	}

	mux := router.NewRouter(store, pages)

	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "port", cfg.Port, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, table := range db.Tables {
		fmt.Fprintf(out, "%-14s %d\n", table, counts[table])
	}
	return nil
}
