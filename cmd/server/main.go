package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kpa-forms-api/config"
	"kpa-forms-api/internal/database"
	"kpa-forms-api/internal/logging"
	"kpa-forms-api/internal/server"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Set via ldflags at build time.
var (
	Commit = "none"
	Date   = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kpa-forms",
		Short:         "KPA form data API",
		Long:          "Stores and serves wheel specification and bogie checksheet forms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the form tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(&cfg, logging.GormLevel(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer closeDB(db)

			return runMigrate(cmd.OutOrStdout(), db)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kpa-forms %s (commit: %s, built: %s)\n", server.Version, Commit, Date)
		},
	}
}

func runMigrate(out io.Writer, db *gorm.DB) error {
	if err := database.AutoMigrate(db); err != nil {
		fmt.Fprintf(out, "%s %v\n", color.New(color.FgRed).Sprint("FAILED"), err)
		return err
	}

	for _, m := range database.AllModels() {
		stmt := &gorm.Statement{DB: db}
		name := fmt.Sprintf("%T", m)
		if err := stmt.Parse(m); err == nil {
			name = stmt.Schema.Table
		}
		fmt.Fprintf(out, "  %s %s\n", color.New(color.FgGreen).Sprint("OK"), name)
	}
	return nil
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.GinMode == gin.ReleaseMode || cfg.GinMode == gin.DebugMode || cfg.GinMode == gin.TestMode {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(&cfg, logging.GormLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closeDB(db)

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		logger.Info("schema migrated")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := server.NewRouter(server.Deps{
		DB:       db,
		Config:   &cfg,
		Logger:   logger,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("server exited")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgRed).Sprint("error:"), err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
