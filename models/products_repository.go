package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategoryID    uint
	PriceLessThan *float64
	Search        string
}

// ProductUpdate carries a partial update; nil fields leave the current
// value untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Image       *string
	CategoryID  *uint
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Order("name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).Preload("Category")

	// Filter
	if filters.CategoryID != 0 {
		query = query.Where("products.category_id = ?", filters.CategoryID)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", pattern, pattern)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Order("products.name").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) GetByCategory(categoryID uint) ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("category_id = ?", categoryID).
		Order("name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct persists a new product and re-reads it so generated
// fields (id, timestamps) come from the store, not the caller.
func (r *ProductsRepository) CreateProduct(product *Product) (*Product, error) {
	if err := r.db.Create(product).Error; err != nil {
		return nil, err
	}
	return r.GetByID(product.ID)
}

// UpdateProduct merges the given partial update over the current row;
// nil fields are left untouched.
func (r *ProductsRepository) UpdateProduct(id uint, update ProductUpdate) (*Product, error) {
	if _, err := r.GetByID(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.Stock != nil {
		fields["stock"] = *update.Stock
	}
	if update.Image != nil {
		fields["image"] = *update.Image
	}
	if update.CategoryID != nil {
		fields["category_id"] = *update.CategoryID
	}

	if len(fields) > 0 {
		if err := r.db.Model(&Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

// DeleteProduct reports whether a row was actually removed; deleting a
// missing id is a no-op.
func (r *ProductsRepository) DeleteProduct(id uint) (bool, error) {
	res := r.db.Delete(&Product{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
