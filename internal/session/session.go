// Package session holds the per-client application state: the signed-in
// user and their hydrated cart. Every mutation goes through the
// repository layer and then re-reads the cart, so the in-memory view is
// never a locally patched guess. Totals are derived sums, recomputed on
// each call, never cached.
//
// A Session is used from a single goroutine; cart and order operations
// run to completion one at a time.
package session

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storebase/storefront/models"
)

// CartStore is the slice of the carts repository a session needs.
type CartStore interface {
	GetOrCreate(userID uint) (*models.Cart, error)
	Items(cartID uint) ([]models.CartItem, error)
	AddItem(cartID, productID uint, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(itemID uint, quantity int) (*models.CartItem, error)
	RemoveItem(itemID uint) (bool, error)
	Clear(cartID uint) (bool, error)
}

// OrderPlacer converts the cart into an order atomically.
type OrderPlacer interface {
	PlaceOrder(userID, cartID uint, shippingAddress string) (*models.Order, error)
}

type Session struct {
	user  *models.User
	cart  *models.Cart
	items []models.CartItem

	carts  CartStore
	orders OrderPlacer
}

// New opens a session for the given user, lazily creating their cart.
func New(user *models.User, carts CartStore, orders OrderPlacer) (*Session, error) {
	cart, err := carts.GetOrCreate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	s := &Session{user: user, cart: cart, carts: carts, orders: orders}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) User() *models.User { return s.user }
func (s *Session) Cart() *models.Cart { return s.cart }

// Items returns the current hydrated cart lines.
func (s *Session) Items() []models.CartItem { return s.items }

// TotalItems is the summed quantity over all lines.
func (s *Session) TotalItems() int {
	total := 0
	for i := range s.items {
		total += s.items[i].Quantity
	}
	return total
}

// TotalPrice is the summed line totals at current product prices.
func (s *Session) TotalPrice() decimal.Decimal {
	return models.CartItemsTotal(s.items)
}

func (s *Session) AddToCart(productID uint, quantity int) error {
	if _, err := s.carts.AddItem(s.cart.ID, productID, quantity); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return s.refresh()
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *Session) UpdateQuantity(itemID uint, quantity int) error {
	if _, err := s.carts.UpdateItemQuantity(itemID, quantity); err != nil {
		return fmt.Errorf("failed to update item quantity: %w", err)
	}
	return s.refresh()
}

func (s *Session) RemoveFromCart(itemID uint) error {
	if _, err := s.carts.RemoveItem(itemID); err != nil {
		return fmt.Errorf("failed to remove item from cart: %w", err)
	}
	return s.refresh()
}

func (s *Session) ClearCart() error {
	if _, err := s.carts.Clear(s.cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return s.refresh()
}

// Checkout places an order from the session's cart and refreshes the
// (now empty) cart view.
func (s *Session) Checkout(shippingAddress string) (*models.Order, error) {
	order, err := s.orders.PlaceOrder(s.user.ID, s.cart.ID, shippingAddress)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Session) refresh() error {
	items, err := s.carts.Items(s.cart.ID)
	if err != nil {
		return fmt.Errorf("failed to load cart items: %w", err)
	}
	s.items = items
	return nil
}
