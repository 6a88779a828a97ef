package models

import "gorm.io/gorm"

// User is a dashboard operator: an admin who manages the catalog or a
// cashier who rings up orders.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;not null;default:cashier" json:"role"`
}
