package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/bazaar/internal/api"
	"github.com/talgya/bazaar/internal/config"
	"github.com/talgya/bazaar/internal/persistence"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the negotiation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		var db *persistence.DB
		if cfg.DBPath != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
				slog.Warn("persistence disabled", "error", err)
			} else if db, err = persistence.Open(cfg.DBPath); err != nil {
				slog.Warn("persistence disabled", "error", err)
				db = nil
			}
		}
		if db != nil {
			defer db.Close()
		}

		if cfg.API.AdminKey == "" {
			slog.Warn("api.admin_key not set, POST /api/v1/negotiate is disabled")
		}

		server := &api.Server{
			DB:       db,
			Port:     cfg.API.Port,
			AdminKey: cfg.API.AdminKey,
			Seed:     cfg.Seed,
		}
		server.Start()

		fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.API.Port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
