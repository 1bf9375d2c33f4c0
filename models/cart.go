package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is a user's in-progress selection of products.
// Each user has at most one cart, created lazily on first use and
// never deleted; a successful checkout only clears its items.
type Cart struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"uniqueIndex;not null"`
	Items     []CartItem `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Cart) TableName() string {
	return "carts"
}

// CartItem is one product line in a cart. A cart holds at most one line
// per product; re-adding a product increments the quantity instead.
type CartItem struct {
	ID        uint    `gorm:"primaryKey"`
	CartID    uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity  int     `gorm:"not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the line total at the product's current price.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemsTotal sums line totals over hydrated cart items using current
// product prices. This is the amount frozen into an order at checkout.
func CartItemsTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return total
}
