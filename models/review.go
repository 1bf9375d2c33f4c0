package models

import "time"

// Review is a customer rating of a product. VerifiedPurchase is set at
// creation time from the reviewer's order history.
type Review struct {
	ID               uint   `gorm:"primaryKey"`
	ProductID        uint   `gorm:"not null;index"`
	UserID           uint   `gorm:"not null;index"`
	Rating           int    `gorm:"not null"`
	Title            string `gorm:"not null"`
	Comment          string
	VerifiedPurchase bool `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *Review) TableName() string {
	return "reviews"
}

// ReviewSummary aggregates the reviews of one product.
type ReviewSummary struct {
	AverageRating      float64       `json:"average_rating"`
	TotalReviews       int64         `json:"total_reviews"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}
