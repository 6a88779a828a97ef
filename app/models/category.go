package models

import "gorm.io/gorm"

// Category groups products on the cashier's menu grid.
type Category struct {
	gorm.Model
	Name     string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Products []Product `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	// ProductCount is filled by projection queries, not stored.
	ProductCount int64 `gorm:"->;-:migration" json:"productCount"`
}
