package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrEmptyCart is returned when checkout is attempted on a cart with no
// items. This is a defined abort, not a storage failure.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInsufficientStock is returned when a purchase asks for more units
// than a product has in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidStatusTransition is returned when an order status change is
// not allowed from the order's current status.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

func (r *OrdersRepository) GetAllOrders() ([]Order, error) {
	var orders []Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRepository) GetByID(id uint) (*Order, error) {
	var order Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrdersRepository) GetByUser(userID uint) ([]Order, error) {
	var orders []Order
	if err := r.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Items returns the order's lines hydrated with their product rows.
// Line prices are the frozen purchase prices, not live catalog prices.
func (r *OrdersRepository) Items(orderID uint) ([]OrderItem, error) {
	var items []OrderItem
	if err := r.db.
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus moves an order to a new status if the transition is
// allowed from its current one.
func (r *OrdersRepository) UpdateStatus(id uint, status string) (*Order, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !ValidStatusTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, status)
	}
	if err := r.db.Model(&Order{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// PlaceOrder converts a cart into a persisted order inside one
// transaction: it freezes the current product prices into order lines,
// decrements stock, and clears the cart. Any failure rolls the whole
// conversion back, leaving cart and stock untouched.
//
// The stock decrement is guarded (stock >= quantity) so that two orders
// racing for the same product can never drive stock negative; the loser
// fails with ErrInsufficientStock.
func (r *OrdersRepository) PlaceOrder(userID, cartID uint, shippingAddress string) (*Order, error) {
	var placed *Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var items []CartItem
		if err := tx.
			Preload("Product").
			Where("cart_id = ?", cartID).
			Order("id").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order := Order{
			Number:      uuid.New().String(),
			UserID:      userID,
			TotalAmount: CartItemsTotal(items),
			Status:      OrderStatusPending,
			OrderDate:   time.Now(),
		}
		if shippingAddress != "" {
			order.ShippingAddress = &shippingAddress
		}
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			line := OrderItem{
				OrderID:   order.ID,
				ProductID: items[i].ProductID,
				Quantity:  items[i].Quantity,
				Price:     items[i].Product.Price,
			}
			if err := tx.Omit("Product").Create(&line).Error; err != nil {
				return err
			}

			res := tx.Model(&Product{}).
				Where("id = ? AND stock >= ?", items[i].ProductID, items[i].Quantity).
				Update("stock", gorm.Expr("stock - ?", items[i].Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, items[i].ProductID)
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&CartItem{}).Error; err != nil {
			return err
		}

		var out Order
		if err := tx.Preload("Items").First(&out, order.ID).Error; err != nil {
			return err
		}
		placed = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}
