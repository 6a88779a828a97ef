package repositories

import (
	"errors"

	"gorm.io/gorm"

	"waroengpos/app/models"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/orm"
)

// CategoryFilterAll is the sentinel meaning "no category restriction".
// It bypasses the filter entirely; it is not a category named "all".
const CategoryFilterAll = "all"

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns products, optionally restricted to one category. Pass
// CategoryFilterAll (or "") to list everything.
func (r *ProductRepository) All(categoryID string) ([]models.Product, error) {
	q := orm.DB().Model(&models.Product{}).Preload("Category").Order("products.name asc")
	if categoryID != "" && categoryID != CategoryFilterAll {
		q = q.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	err := q.Get(&products)
	return products, err
}

// FindByIDs resolves a set of product IDs to live catalog rows.
func (r *ProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Where("id IN ?", ids).Get(&products)
	return products, err
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, apperr.NotFound("product not found")
	}
	return product, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Product{})
}
