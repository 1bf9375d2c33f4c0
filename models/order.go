package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses, in rough lifecycle order.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// statusTransitions lists the allowed next statuses for each status.
// Delivered and cancelled are terminal.
var statusTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidStatusTransition reports whether an order may move from one
// status to another.
func ValidStatusTransition(from, to string) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order is an immutable record of a completed purchase. TotalAmount is
// computed once at checkout and never recomputed from live product
// prices; only Status changes after creation.
type Order struct {
	ID              uint            `gorm:"primaryKey"`
	Number          string          `gorm:"uniqueIndex;not null"`
	UserID          uint            `gorm:"not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status          string          `gorm:"not null;default:pending"`
	ShippingAddress *string
	OrderDate       time.Time   `gorm:"not null"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line. Price is the product's price at the
// moment of purchase, not the live catalog price.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Product   Product         `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
