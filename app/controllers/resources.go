package controllers

import (
	"waroengpos/app/models"
	"waroengpos/pkg/resource"
	"waroengpos/pkg/storage"
)

// CategoryResource shapes a category for the menu sidebar.
type CategoryResource struct{ resource.Base }

func (r *CategoryResource) ToArray(v interface{}) resource.Map {
	c := v.(models.Category)
	return resource.Map{
		"id":           c.ID,
		"name":         c.Name,
		"productCount": c.ProductCount,
	}
}

// ProductResource shapes a product for the cashier grid, resolving the
// stored image key to a servable URL.
type ProductResource struct{ resource.Base }

func (r *ProductResource) ToArray(v interface{}) resource.Map {
	p := v.(models.Product)

	imageURL := ""
	if p.ImageKey != "" {
		imageURL = storage.URL(p.ImageKey)
	}

	out := resource.Map{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price,
		"imageUrl":   imageURL,
		"categoryId": p.CategoryID,
	}
	if p.Category.ID != 0 {
		out["category"] = resource.Map{"id": p.Category.ID, "name": p.Category.Name}
	}
	return out
}

// OrderResource shapes an order for the sales screen.
type OrderResource struct{ resource.Base }

func (r *OrderResource) ToArray(v interface{}) resource.Map {
	o := v.(models.Order)

	items := make([]resource.Map, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, resource.Map{
			"productId": it.ProductID,
			"name":      it.Name,
			"price":     it.Price,
			"quantity":  it.Quantity,
		})
	}

	return resource.Map{
		"id":                    o.ID,
		"createdAt":             o.CreatedAt,
		"subtotal":              o.Subtotal,
		"tax":                   o.Tax,
		"grandTotal":            o.GrandTotal,
		"status":                o.Status,
		"paidAt":                o.PaidAt,
		"externalTransactionId": o.ExternalTransactionID,
		"paymentMethodId":       o.PaymentMethodID,
		"items":                 items,
	}
}
