package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storebase/storefront/app/api"
	"github.com/storebase/storefront/models"
)

type CartProvider interface {
	GetOrCreate(userID uint) (*models.Cart, error)
	Items(cartID uint) ([]models.CartItem, error)
	GetItem(itemID uint) (*models.CartItem, error)
	AddItem(cartID, productID uint, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(itemID uint, quantity int) (*models.CartItem, error)
	RemoveItem(itemID uint) (bool, error)
	Clear(cartID uint) (bool, error)
}

type ProductProvider interface {
	GetByID(id uint) (*models.Product, error)
}

type CartHandler struct {
	carts    CartProvider
	products ProductProvider
}

func NewCartHandler(carts CartProvider, products ProductProvider) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
	}
}

type Item struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type Response struct {
	CartID     uint    `json:"cart_id"`
	Items      []Item  `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

func newResponse(cartID uint, items []models.CartItem) Response {
	out := Response{
		CartID: cartID,
		Items:  make([]Item, len(items)),
	}
	for i := range items {
		it := &items[i]
		out.Items[i] = Item{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Price:     it.Product.Price.InexactFloat64(),
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal().InexactFloat64(),
		}
		out.TotalItems += it.Quantity
	}
	out.TotalPrice = models.CartItemsTotal(items).InexactFloat64()
	return out
}

// respondCart re-reads the cart after a mutation so the response always
// reflects persisted state, not a local patch.
func (h *CartHandler) respondCart(c *gin.Context, cartID uint, status int) {
	items, err := h.carts.Items(cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(status, newResponse(cartID, items))
}

// userCart resolves the authenticated user's cart, creating it lazily.
func (h *CartHandler) userCart(c *gin.Context) (*models.Cart, bool) {
	userID, ok := api.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	cart, err := h.carts.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return nil, false
	}
	return cart, true
}

func (h *CartHandler) HandleGet(c *gin.Context) {
	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	h.respondCart(c, cart.ID, http.StatusOK)
}

func (h *CartHandler) HandleAddItem(c *gin.Context) {
	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	cart, ok := h.userCart(c)
	if !ok {
		return
	}

	if _, err := h.products.GetByID(input.ProductID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
		return
	}

	if _, err := h.carts.AddItem(cart.ID, input.ProductID, input.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
		return
	}

	h.respondCart(c, cart.ID, http.StatusOK)
}

func (h *CartHandler) HandleUpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var input struct {
		// Zero or negative removes the line, so no gt constraint here.
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	if !h.ownsItem(c, cart, uint(itemID)) {
		return
	}

	if _, err := h.carts.UpdateItemQuantity(uint(itemID), *input.Quantity); err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item quantity"})
		return
	}

	h.respondCart(c, cart.ID, http.StatusOK)
}

func (h *CartHandler) HandleRemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	if !h.ownsItem(c, cart, uint(itemID)) {
		return
	}

	if _, err := h.carts.RemoveItem(uint(itemID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item from cart"})
		return
	}

	h.respondCart(c, cart.ID, http.StatusOK)
}

func (h *CartHandler) HandleClear(c *gin.Context) {
	cart, ok := h.userCart(c)
	if !ok {
		return
	}

	if _, err := h.carts.Clear(cart.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	h.respondCart(c, cart.ID, http.StatusOK)
}

// ownsItem verifies the item belongs to the caller's cart. A foreign
// item reads as not-found rather than forbidden, so item ids can't be
// probed across carts.
func (h *CartHandler) ownsItem(c *gin.Context, cart *models.Cart, itemID uint) bool {
	item, err := h.carts.GetItem(itemID)
	if err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart item"})
		return false
	}
	if item.CartID != cart.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return false
	}
	return true
}
