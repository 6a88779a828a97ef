package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"waroengpos/app/models"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/cache"
	"waroengpos/pkg/orm"
)

const (
	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 10 * time.Minute
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category with its live product count. Reads go through
// the cache; every write on this repository drops the key.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Select("categories.*, (?) AS product_count",
			orm.DB().Gorm().
				Model(&models.Product{}).
				Select("COUNT(*)").
				Where("products.category_id = categories.id").
				Where("products.deleted_at IS NULL")).
		Order("categories.name asc").
		Cache(categoriesCacheKey, categoriesCacheTTL, &categories)
	return categories, err
}

// Find looks up a category by primary key.
func (r *CategoryRepository) Find(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return category, apperr.NotFound("category not found")
	}
	return category, err
}

// Create persists a new category and drops the list cache.
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := orm.DB().Create(category); err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey) //nolint:errcheck
	return nil
}

// Update persists a name change.
func (r *CategoryRepository) Update(category *models.Category) error {
	if err := orm.DB().Save(category); err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey) //nolint:errcheck
	return nil
}

// Delete removes a category. Categories still referenced by products are
// protected: the delete fails instead of orphaning the products.
func (r *CategoryRepository) Delete(id uint) error {
	var n int64
	if err := orm.DB().
		Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&n); err != nil {
		return err
	}
	if n > 0 {
		return apperr.Unprocessable("category still has products")
	}

	if err := orm.DB().Where("id = ?", id).Delete(&models.Category{}); err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey) //nolint:errcheck
	return nil
}
