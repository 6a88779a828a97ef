package models

import "gorm.io/gorm"

// MinProductPrice is the lowest sellable price in minor currency units.
const MinProductPrice int64 = 1000

// Product is one sellable menu item. Price is in minor currency units;
// there is no floating-point money anywhere in the system.
type Product struct {
	gorm.Model
	Name       string `gorm:"size:255;not null;index" json:"name"`
	Price      int64  `gorm:"not null" json:"price"`
	ImageKey   string `gorm:"size:512" json:"-"`
	CategoryID uint   `gorm:"not null;index" json:"categoryId"`

	Category Category `json:"-"`
}
