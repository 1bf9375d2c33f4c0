package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/storebase/storefront/internal/config"
	"github.com/storebase/storefront/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database and bring the schema up to date",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := database.EnsureDatabase(&cfg.DB); err != nil {
		return err
	}

	db, err := database.Open(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return err
	}

	log.Println("schema is up to date")
	return nil
}
