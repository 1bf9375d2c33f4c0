package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/storebase/storefront/internal/config"
	"github.com/storebase/storefront/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the development data set",
	Long: `Load a development data set: categories, a small catalog, and an
admin account. Runs the schema migration first and is a no-op on an
already-seeded database.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
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

	if err := database.Seed(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	log.Println("seed data loaded")
	return nil
}
