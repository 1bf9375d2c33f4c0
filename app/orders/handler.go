package orders

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storebase/storefront/app/api"
	"github.com/storebase/storefront/models"
)

type OrderProvider interface {
	GetAllOrders() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByUser(userID uint) ([]models.Order, error)
	Items(orderID uint) ([]models.OrderItem, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
	PlaceOrder(userID, cartID uint, shippingAddress string) (*models.Order, error)
}

type CartProvider interface {
	GetOrCreate(userID uint) (*models.Cart, error)
}

type OrderHandler struct {
	repo  OrderProvider
	carts CartProvider
}

func NewOrderHandler(r OrderProvider, carts CartProvider) *OrderHandler {
	return &OrderHandler{
		repo:  r,
		carts: carts,
	}
}

type Line struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Response struct {
	ID              uint      `json:"id"`
	Number          string    `json:"number"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	OrderDate       time.Time `json:"order_date"`
	Items           []Line    `json:"items"`
}

func newResponse(o *models.Order) Response {
	out := Response{
		ID:          o.ID,
		Number:      o.Number,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		Status:      o.Status,
		OrderDate:   o.OrderDate,
		Items:       make([]Line, len(o.Items)),
	}
	if o.ShippingAddress != nil {
		out.ShippingAddress = *o.ShippingAddress
	}
	for i := range o.Items {
		out.Items[i] = Line{
			ProductID: o.Items[i].ProductID,
			Quantity:  o.Items[i].Quantity,
			Price:     o.Items[i].Price.InexactFloat64(),
		}
	}
	return out
}

// HandleCheckout converts the caller's cart into an order.
func (h *OrderHandler) HandleCheckout(c *gin.Context) {
	var input struct {
		ShippingAddress string `json:"shipping_address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	userID, ok := api.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	cart, err := h.carts.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		return
	}

	order, err := h.repo.PlaceOrder(userID, cart.ID, input.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, models.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, newResponse(order))
}

// HandleList returns the caller's order history, newest first.
func (h *OrderHandler) HandleList(c *gin.Context) {
	userID, ok := api.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.repo.GetByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	response := make([]Response, len(orders))
	for i := range orders {
		response[i] = newResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

// HandleGet returns one order. Customers only see their own orders;
// admins see any. A foreign order reads as not-found.
func (h *OrderHandler) HandleGet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	userID, _ := api.UserID(c)
	if order.UserID != userID && api.Role(c) != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, newResponse(order))
}

// HandleListAll returns every order. Admin only.
func (h *OrderHandler) HandleListAll(c *gin.Context) {
	orders, err := h.repo.GetAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	response := make([]Response, len(orders))
	for i := range orders {
		response[i] = newResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

// HandleUpdateStatus moves an order through its lifecycle. Admin only.
func (h *OrderHandler) HandleUpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	order, err := h.repo.UpdateStatus(uint(id), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, models.ErrInvalidStatusTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, newResponse(order))
}
