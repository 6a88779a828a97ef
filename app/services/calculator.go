package services

import (
	"fmt"

	"waroengpos/app/models"
	"waroengpos/pkg/apperr"
)

// CheckoutLine is one requested (product, quantity) pair.
type CheckoutLine struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// Totals is the result of pricing a checkout.
type Totals struct {
	Subtotal   int64 `json:"subtotal"`
	Tax        int64 `json:"tax"`
	GrandTotal int64 `json:"grandTotal"`
}

// taxOf computes the 10% tax on a subtotal in minor units, rounding half up
// to the nearest minor unit. Integer arithmetic only.
func taxOf(subtotal int64) int64 {
	return (subtotal + 5) / 10
}

// CalculateTotals prices the requested lines against the supplied catalog
// prices. It is pure: no lookups, no writes.
//
// Fails with a validation error when a quantity is below one, a product ID
// has no price, or the grand total exceeds the gateway ceiling.
func CalculateTotals(lines []CheckoutLine, prices map[uint]int64) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, apperr.Validation("order has no items")
	}

	var subtotal int64
	for _, line := range lines {
		if line.Quantity < 1 {
			return Totals{}, apperr.Validation(
				fmt.Sprintf("quantity for product %d must be at least 1", line.ProductID))
		}
		price, ok := prices[line.ProductID]
		if !ok {
			return Totals{}, apperr.Validation(
				fmt.Sprintf("product %d does not exist", line.ProductID))
		}
		subtotal += price * int64(line.Quantity)
	}

	tax := taxOf(subtotal)
	grand := subtotal + tax
	if grand > models.MaxGrandTotal {
		return Totals{}, apperr.Validation(
			fmt.Sprintf("grand total %d exceeds the payment limit of %d", grand, models.MaxGrandTotal))
	}

	return Totals{Subtotal: subtotal, Tax: tax, GrandTotal: grand}, nil
}
