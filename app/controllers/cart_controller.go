package controllers

import (
	"waroengpos/app/services"
	"waroengpos/pkg/cart"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/session"
	"waroengpos/pkg/storage"
)

// CartController exposes the session-scoped cart the cashier builds up
// before checkout. Carts never touch the database.
type CartController struct {
	store   *cart.Store
	catalog *services.CatalogService
}

func NewCartController(store *cart.Store) *CartController {
	return &CartController{store: store, catalog: services.NewCatalogService()}
}

type addCartItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"nullable,gte=1"`
}

// Show returns the current session's cart.
func (c *CartController) Show(cc *ctx.Context) {
	cc.Success(c.store.Items(session.FromRequest(cc.R)))
}

// AddItem adds a product to the cart. Repeat adds of the same product
// accumulate quantity on the existing line.
func (c *CartController) AddItem(cc *ctx.Context) {
	var body addCartItemRequest
	if !cc.BindJSON(&body) {
		return
	}

	product, err := c.catalog.GetProduct(body.ProductID)
	if err != nil {
		cc.Fail(err)
		return
	}

	imageURL := ""
	if product.ImageKey != "" {
		imageURL = storage.URL(product.ImageKey)
	}

	items := c.store.Add(session.FromRequest(cc.R), cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  imageURL,
		Quantity:  body.Quantity,
	})
	cc.Success(items)
}

// RemoveItem drops a product's line from the cart.
func (c *CartController) RemoveItem(cc *ctx.Context) {
	items := c.store.Remove(session.FromRequest(cc.R), cc.ParamUint("productId"))
	cc.Success(items)
}

// Clear empties the session's cart.
func (c *CartController) Clear(cc *ctx.Context) {
	c.store.Clear(session.FromRequest(cc.R))
	cc.Success([]cart.Item{})
}
