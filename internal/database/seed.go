package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/storebase/storefront/models"
)

type seedProduct struct {
	name     string
	desc     string
	price    string
	stock    int
	image    string
	category string
}

var seedCategories = []models.Category{
	{Name: "Electronics", Description: strptr("Electronic devices and gadgets")},
	{Name: "Clothing", Description: strptr("Apparel and fashion items")},
	{Name: "Home & Kitchen", Description: strptr("Home decor and kitchen appliances")},
	{Name: "Books", Description: strptr("Books and literature")},
	{Name: "Sports & Outdoors", Description: strptr("Sporting goods and outdoor equipment")},
}

var seedProducts = []seedProduct{
	{"Smartphone X", "Latest smartphone with advanced features", "699.99", 50, "/images/products/smartphone.jpg", "Electronics"},
	{"Wireless Headphones", "Premium noise-cancelling headphones", "149.99", 100, "/images/products/headphones.jpg", "Electronics"},
	{"Laptop Pro", "High-performance laptop for professionals", "1299.99", 25, "/images/products/laptop.jpg", "Electronics"},
	{"Smart Watch", "Fitness tracking and notifications", "199.99", 75, "/images/products/smartwatch.jpg", "Electronics"},
	{"Bluetooth Speaker", "Portable speaker with crisp sound", "79.99", 120, "/images/products/speaker.jpg", "Electronics"},
	{"Men's T-Shirt", "Comfortable cotton t-shirt", "19.99", 200, "/images/products/tshirt.jpg", "Clothing"},
	{"Women's Jeans", "Classic fit denim jeans", "49.99", 150, "/images/products/jeans.jpg", "Clothing"},
	{"Winter Jacket", "Warm winter coat with hood", "89.99", 50, "/images/products/jacket.jpg", "Clothing"},
	{"Running Shoes", "Lightweight shoes for runners", "79.99", 100, "/images/products/shoes.jpg", "Clothing"},
	{"Coffee Maker", "Programmable coffee brewing system", "69.99", 60, "/images/products/coffeemaker.jpg", "Home & Kitchen"},
	{"Blender", "High-speed blender for smoothies", "49.99", 40, "/images/products/blender.jpg", "Home & Kitchen"},
	{"Kitchen Knife Set", "Professional grade kitchen knives", "99.99", 30, "/images/products/knives.jpg", "Home & Kitchen"},
	{"The Great Novel", "Bestselling fiction book", "14.99", 200, "/images/products/novel.jpg", "Books"},
	{"Cookbook Collection", "Recipe collection from top chefs", "24.99", 75, "/images/products/cookbook.jpg", "Books"},
	{"Yoga Mat", "Non-slip exercise mat", "24.99", 120, "/images/products/yogamat.jpg", "Sports & Outdoors"},
	{"Camping Tent", "4-person weather-resistant tent", "129.99", 30, "/images/products/tent.jpg", "Sports & Outdoors"},
}

// Seed loads a development data set: the catalog plus an admin account
// (admin@example.com / password123). Idempotent; an already-seeded
// database is left alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]uint, len(seedCategories))
		for i := range seedCategories {
			c := seedCategories[i]
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
			}
			byName[c.Name] = c.ID
		}

		for _, p := range seedProducts {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return fmt.Errorf("bad seed price for %q: %w", p.name, err)
			}
			product := models.Product{
				Name:        p.name,
				Description: strptr(p.desc),
				Price:       price,
				Stock:       p.stock,
				Image:       strptr(p.image),
				CategoryID:  byName[p.category],
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", p.name, err)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Username:     "admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		return nil
	})
}

func strptr(s string) *string {
	return &s
}
