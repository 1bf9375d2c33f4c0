package models

import "time"

// Category groups products for browsing.
// It includes a required name and an optional description.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Category) TableName() string {
	return "categories"
}
