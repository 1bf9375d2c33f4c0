package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storebase/storefront/app/api"
	"github.com/storebase/storefront/models"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func newCategoryResponse(c *models.Category) CategoryResponse {
	out := CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
	}
	if c.Description != nil {
		out.Description = *c.Description
	}
	return out
}

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	CreateCategory(category *models.Category) (*models.Category, error)
	UpdateCategory(id uint, update models.CategoryUpdate) (*models.Category, error)
	DeleteCategory(id uint) (bool, error)
}

type ProductLister interface {
	GetByCategory(categoryID uint) ([]models.Product, error)
}

type CategoryHandler struct {
	repo     CategoryProvider
	products ProductLister
}

func NewCategoryHandler(r CategoryProvider, products ProductLister) *CategoryHandler {
	return &CategoryHandler{repo: r, products: products}
}

func (h *CategoryHandler) HandleGetAll(c *gin.Context) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = newCategoryResponse(&categories[i])
	}

	c.JSON(http.StatusOK, response)
}

// HandleGetProducts lists the products in one category.
func (h *CategoryHandler) HandleGetProducts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	if _, err := h.repo.GetByID(uint(id)); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch category"})
		return
	}

	products, err := h.products.GetByCategory(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	type productResponse struct {
		ID    uint    `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
	}
	response := make([]productResponse, len(products))
	for i := range products {
		response[i] = productResponse{
			ID:    products[i].ID,
			Name:  products[i].Name,
			Price: products[i].Price.InexactFloat64(),
			Stock: products[i].Stock,
		}
	}

	c.JSON(http.StatusOK, response)
}

type categoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	category := &models.Category{Name: input.Name}
	if input.Description != "" {
		category.Description = &input.Description
	}

	created, err := h.repo.CreateCategory(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, newCategoryResponse(created))
}

func (h *CategoryHandler) HandleUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	updated, err := h.repo.UpdateCategory(uint(id), models.CategoryUpdate{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(updated))
}

func (h *CategoryHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	deleted, err := h.repo.DeleteCategory(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
