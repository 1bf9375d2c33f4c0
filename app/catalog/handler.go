package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storebase/storefront/app/api"
	"github.com/storebase/storefront/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Image       string   `json:"image,omitempty"`
	Category    Category `json:"category"`
}

type ProductProvider interface {
	GetAllProducts() ([]models.Product, error)
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	CreateProduct(product *models.Product) (*models.Product, error)
	UpdateProduct(id uint, update models.ProductUpdate) (*models.Product, error)
	DeleteProduct(id uint) (bool, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func newProduct(p *models.Product) Product {
	out := Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.InexactFloat64(),
		Stock: p.Stock,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	return out
}

func (h *CatalogHandler) HandleGet(c *gin.Context) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := c.Query("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := c.Query("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	filters := models.ProductFilters{
		Search: c.Query("q"),
	}
	if catStr := c.Query("category"); catStr != "" {
		if id, err := strconv.ParseUint(catStr, 10, 32); err == nil {
			filters.CategoryID = uint(id)
		}
	}
	if priceStr := c.Query("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve products"})
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = newProduct(&res[i])
	}

	c.JSON(http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, newProduct(product))
}

type productInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Image       string  `json:"image"`
	CategoryID  uint    `json:"category_id" binding:"required"`
}

func (h *CatalogHandler) HandleCreate(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	product := &models.Product{
		Name:       input.Name,
		Price:      decimal.NewFromFloat(input.Price),
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
	}
	if input.Description != "" {
		product.Description = &input.Description
	}
	if input.Image != "" {
		product.Image = &input.Image
	}

	created, err := h.repo.CreateProduct(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, newProduct(created))
}

type productUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	CategoryID  *uint    `json:"category_id"`
}

func (h *CatalogHandler) HandleUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var input productUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	update := models.ProductUpdate{
		Name:        input.Name,
		Description: input.Description,
		Stock:       input.Stock,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
	}
	if input.Price != nil {
		price := decimal.NewFromFloat(*input.Price)
		update.Price = &price
	}

	updated, err := h.repo.UpdateProduct(uint(id), update)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, newProduct(updated))
}

func (h *CatalogHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	deleted, err := h.repo.DeleteProduct(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
