package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/storebase/storefront/models"
)

// Migrate brings the schema up to date. Parents are listed before
// children so the foreign keys resolve.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
