package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/storebase/storefront/internal/config"
	"github.com/storebase/storefront/internal/database"
	"github.com/storebase/storefront/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront API server",
	Long: `Start the storefront API server, which exposes the catalog, cart,
checkout, order history, and admin endpoints.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	db, err := database.Open(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	srv := server.NewServer(db, cfg)

	log.Printf("starting server on %s", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
