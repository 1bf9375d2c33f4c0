package reviews

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storebase/storefront/app/api"
	"github.com/storebase/storefront/models"
)

type ReviewProvider interface {
	GetByProduct(productID uint) ([]models.Review, error)
	CreateReview(review *models.Review) (*models.Review, error)
	Summary(productID uint) (*models.ReviewSummary, error)
}

type ProductProvider interface {
	GetByID(id uint) (*models.Product, error)
}

type ReviewHandler struct {
	repo     ReviewProvider
	products ProductProvider
}

func NewReviewHandler(r ReviewProvider, products ProductProvider) *ReviewHandler {
	return &ReviewHandler{
		repo:     r,
		products: products,
	}
}

type Review struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment,omitempty"`
	VerifiedPurchase bool      `json:"verified_purchase"`
	CreatedAt        time.Time `json:"created_at"`
}

type Response struct {
	Summary models.ReviewSummary `json:"summary"`
	Reviews []Review             `json:"reviews"`
}

func newReview(r *models.Review) Review {
	return Review{
		ID:               r.ID,
		UserID:           r.UserID,
		Rating:           r.Rating,
		Title:            r.Title,
		Comment:          r.Comment,
		VerifiedPurchase: r.VerifiedPurchase,
		CreatedAt:        r.CreatedAt,
	}
}

// HandleList returns a product's reviews together with the aggregate
// summary.
func (h *ReviewHandler) HandleList(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	reviews, err := h.repo.GetByProduct(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}
	summary, err := h.repo.Summary(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}

	response := Response{
		Summary: *summary,
		Reviews: make([]Review, len(reviews)),
	}
	for i := range reviews {
		response.Reviews[i] = newReview(&reviews[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) HandleCreate(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	var input struct {
		Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
		Title   string `json:"title" binding:"required,max=200"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": api.ValidationErrors(err)})
		return
	}

	userID, ok2 := api.UserID(c)
	if !ok2 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	created, err := h.repo.CreateReview(&models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, newReview(created))
}

// productID parses the :id path param and checks the product exists.
func (h *ReviewHandler) productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}

	if _, err := h.products.GetByID(uint(id)); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return 0, false
	}
	return uint(id), true
}
