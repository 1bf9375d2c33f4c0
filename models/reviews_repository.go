package models

import (
	"errors"

	"gorm.io/gorm"
)

type ReviewsRepository struct {
	db *gorm.DB
}

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

func NewReviewsRepository(db *gorm.DB) *ReviewsRepository {
	return &ReviewsRepository{
		db: db,
	}
}

func (r *ReviewsRepository) GetByID(id uint) (*Review, error) {
	var review Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewsRepository) GetByProduct(productID uint) ([]Review, error) {
	var reviews []Review
	if err := r.db.
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewsRepository) GetByUser(userID uint) ([]Review, error) {
	var reviews []Review
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview persists a review, stamping it as a verified purchase
// when the reviewer has an order containing the product.
func (r *ReviewsRepository) CreateReview(review *Review) (*Review, error) {
	verified, err := r.IsVerifiedPurchase(review.UserID, review.ProductID)
	if err != nil {
		return nil, err
	}
	review.VerifiedPurchase = verified

	if err := r.db.Create(review).Error; err != nil {
		return nil, err
	}
	return r.GetByID(review.ID)
}

func (r *ReviewsRepository) DeleteReview(id uint) (bool, error) {
	res := r.db.Delete(&Review{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsVerifiedPurchase reports whether the user has ever ordered the
// product.
func (r *ReviewsRepository) IsVerifiedPurchase(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Summary aggregates the product's reviews: average rating, total
// count, and per-star distribution.
func (r *ReviewsRepository) Summary(productID uint) (*ReviewSummary, error) {
	summary := &ReviewSummary{
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.Model(&Review{}).
		Select("rating, COUNT(*) as count").
		Where("product_id = ?", productID).
		Group("rating").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var sum int64
	for _, row := range rows {
		summary.RatingDistribution[row.Rating] = row.Count
		summary.TotalReviews += row.Count
		sum += int64(row.Rating) * row.Count
	}
	if summary.TotalReviews > 0 {
		summary.AverageRating = float64(sum) / float64(summary.TotalReviews)
	}
	return summary, nil
}
