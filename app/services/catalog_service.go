package services

import (
	"strings"

	"waroengpos/app/models"
	"waroengpos/app/repositories"
	"waroengpos/pkg/apperr"
)

// CatalogService manages the category and product catalog.
type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		categories: repositories.NewCategoryRepository(),
		products:   repositories.NewProductRepository(),
	}
}

// GetCategories lists all categories with live product counts.
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	return s.categories.All()
}

// CreateCategory adds a category. Names are trimmed and must be at least
// three characters.
func (s *CatalogService) CreateCategory(name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return models.Category{}, apperr.ValidationFields(map[string]string{
			"name": "name must be at least 3 characters",
		})
	}

	category := models.Category{Name: name}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// EditCategory renames an existing category.
func (s *CatalogService) EditCategory(id uint, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return models.Category{}, apperr.ValidationFields(map[string]string{
			"name": "name must be at least 3 characters",
		})
	}

	category, err := s.categories.Find(id)
	if err != nil {
		return models.Category{}, err
	}

	category.Name = name
	if err := s.categories.Update(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *CatalogService) DeleteCategory(id uint) error {
	if _, err := s.categories.Find(id); err != nil {
		return err
	}
	return s.categories.Delete(id)
}

// GetProducts lists products, filtered by category unless the "all"
// sentinel (or an empty filter) is passed.
func (s *CatalogService) GetProducts(categoryID string) ([]models.Product, error) {
	return s.products.All(categoryID)
}

// GetProduct loads one product.
func (s *CatalogService) GetProduct(id uint) (models.Product, error) {
	return s.products.Find(id)
}

// CreateProduct adds a product after checking the price floor and that the
// owning category exists.
func (s *CatalogService) CreateProduct(name string, price int64, categoryID uint) (models.Product, error) {
	if price < models.MinProductPrice {
		return models.Product{}, apperr.ValidationFields(map[string]string{
			"price": "price must be at least 1000",
		})
	}
	if _, err := s.categories.Find(categoryID); err != nil {
		return models.Product{}, apperr.ValidationFields(map[string]string{
			"categoryId": "category does not exist",
		})
	}

	product := models.Product{Name: name, Price: price, CategoryID: categoryID}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// EditProduct updates a product's fields under the same rules as creation.
func (s *CatalogService) EditProduct(id uint, name string, price int64, categoryID uint) (models.Product, error) {
	product, err := s.products.Find(id)
	if err != nil {
		return models.Product{}, err
	}

	if price < models.MinProductPrice {
		return models.Product{}, apperr.ValidationFields(map[string]string{
			"price": "price must be at least 1000",
		})
	}
	if categoryID != product.CategoryID {
		if _, err := s.categories.Find(categoryID); err != nil {
			return models.Product{}, apperr.ValidationFields(map[string]string{
				"categoryId": "category does not exist",
			})
		}
	}

	product.Name = name
	product.Price = price
	product.CategoryID = categoryID
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// SetProductImage records the storage key of an uploaded product image.
func (s *CatalogService) SetProductImage(id uint, imageKey string) (models.Product, error) {
	product, err := s.products.Find(id)
	if err != nil {
		return models.Product{}, err
	}

	product.ImageKey = imageKey
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(id uint) error {
	if _, err := s.products.Find(id); err != nil {
		return err
	}
	return s.products.Delete(id)
}
