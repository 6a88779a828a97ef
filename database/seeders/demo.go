package seeders

import (
	"gorm.io/gorm"

	"waroengpos/app/models"
	"waroengpos/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
}

// SeedUsers creates the default operator accounts. Idempotent: existing
// emails are left alone.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Admin", "admin@waroengpos.local", "admin-secret-123", "admin"},
		{"Kasir Satu", "kasir@waroengpos.local", "kasir-secret-123", "cashier"},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := models.User{Name: u.name, Email: u.email, Password: hash, Role: u.role}
		if err := db.Where("email = ?", u.email).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog populates a small demo menu.
func SeedCatalog(db *gorm.DB) error {
	menu := map[string][]models.Product{
		"Makanan": {
			{Name: "Nasi Goreng", Price: 18000},
			{Name: "Mie Ayam", Price: 15000},
			{Name: "Ayam Geprek", Price: 20000},
		},
		"Minuman": {
			{Name: "Es Teh", Price: 5000},
			{Name: "Es Jeruk", Price: 7000},
			{Name: "Kopi Susu", Price: 12000},
		},
		"Cemilan": {
			{Name: "Tahu Crispy", Price: 8000},
			{Name: "Pisang Goreng", Price: 10000},
		},
	}

	for categoryName, products := range menu {
		category := models.Category{Name: categoryName}
		if err := db.Where("name = ?", categoryName).FirstOrCreate(&category).Error; err != nil {
			return err
		}

		for _, p := range products {
			p.CategoryID = category.ID
			if err := db.Where("name = ? AND category_id = ?", p.Name, category.ID).
				FirstOrCreate(&p).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
