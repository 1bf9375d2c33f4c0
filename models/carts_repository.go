package models

import (
	"errors"

	"gorm.io/gorm"
)

type CartsRepository struct {
	db *gorm.DB
}

// ErrCartNotFound is returned when a cart is not found.
var ErrCartNotFound = errors.New("cart not found")

// ErrCartItemNotFound is returned when a cart item is not found.
var ErrCartItemNotFound = errors.New("cart item not found")

func NewCartsRepository(db *gorm.DB) *CartsRepository {
	return &CartsRepository{
		db: db,
	}
}

func (r *CartsRepository) GetByID(id uint) (*Cart, error) {
	var cart Cart
	if err := r.db.First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartsRepository) GetByUser(userID uint) (*Cart, error) {
	var cart Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, creating it on first use.
func (r *CartsRepository) GetOrCreate(userID uint) (*Cart, error) {
	cart, err := r.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	cart = &Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return r.GetByID(cart.ID)
}

// Items returns the cart's lines hydrated with their current product
// rows, oldest line first.
func (r *CartsRepository) Items(cartID uint) ([]CartItem, error) {
	var items []CartItem
	if err := r.db.
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartsRepository) GetItem(itemID uint) (*CartItem, error) {
	var item CartItem
	if err := r.db.Preload("Product").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AddItem puts a product into the cart. If the cart already holds a
// line for the product, the quantities are summed instead of creating
// a second line.
func (r *CartsRepository) AddItem(cartID, productID uint, quantity int) (*CartItem, error) {
	var existing CartItem
	err := r.db.
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&existing).Error
	switch {
	case err == nil:
		return r.UpdateItemQuantity(existing.ID, existing.Quantity+quantity)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// A non-positive quantity never creates a line.
		if quantity <= 0 {
			return nil, nil
		}
		item := CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
		if err := r.db.Create(&item).Error; err != nil {
			return nil, err
		}
		return r.GetItem(item.ID)
	default:
		return nil, err
	}
}

// UpdateItemQuantity sets a line's quantity. A quantity of zero or less
// removes the line; a stored non-positive quantity is never allowed.
func (r *CartsRepository) UpdateItemQuantity(itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		if _, err := r.RemoveItem(itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	// Existence is checked up front rather than keyed on RowsAffected:
	// mysql reports zero affected rows when the stored quantity already
	// equals the new one.
	if _, err := r.GetItem(itemID); err != nil {
		return nil, err
	}
	if err := r.db.Model(&CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	return r.GetItem(itemID)
}

func (r *CartsRepository) RemoveItem(itemID uint) (bool, error) {
	res := r.db.Delete(&CartItem{}, itemID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Clear removes every line from the cart, reporting whether any line
// was actually removed.
func (r *CartsRepository) Clear(cartID uint) (bool, error) {
	res := r.db.Where("cart_id = ?", cartID).Delete(&CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
