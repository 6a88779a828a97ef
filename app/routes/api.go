package routes

import (
	"net/http"

	"waroengpos/app/controllers"
	"waroengpos/app/graphql"
	"waroengpos/app/services"
	"waroengpos/pkg/cart"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/metrics"
	"waroengpos/pkg/middleware"
	"waroengpos/pkg/rbac"
	"waroengpos/pkg/router"
	"waroengpos/pkg/ws"
)

// RegisterAPI mounts every HTTP route. carts backs the session carts and
// feed is the kitchen display hub.
func RegisterAPI(r *router.Router, carts *cart.Store, feed *ws.Hub) {
	authController := controllers.NewAuthController()
	categoryController := controllers.NewCategoryController()
	productController := controllers.NewProductController()
	cartController := controllers.NewCartController(carts)
	orderController := controllers.NewOrderController(carts)
	webhookController := controllers.NewWebhookController()

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)

	api := r.Group("/api")

	// Public surface: login and the gateway's webhook (token-verified).
	api.Post("/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/webhooks/payment", "webhooks.payment", ctx.Wrap(webhookController.HandlePayment))

	protected := api.Group("", middleware.Auth)
	admin := rbac.Require(rbac.RoleAdmin)

	protected.Get("/me", "auth.me", ctx.Wrap(authController.Me))

	// Catalog. Reads are open to every operator; mutations are admin-only.
	protected.Get("/categories", "categories.index", ctx.Wrap(categoryController.Index))
	protected.Post("/categories", "categories.store", ctx.Wrap(categoryController.Store), admin)
	protected.Put("/categories/{categoryId}", "categories.update", ctx.Wrap(categoryController.Update), admin)
	protected.Delete("/categories/{categoryId}", "categories.destroy", ctx.Wrap(categoryController.Destroy), admin)

	protected.Get("/products", "products.index", ctx.Wrap(productController.Index))
	protected.Post("/products", "products.store", ctx.Wrap(productController.Store), admin)
	protected.Put("/products/{productId}", "products.update", ctx.Wrap(productController.Update), admin)
	protected.Delete("/products/{productId}", "products.destroy", ctx.Wrap(productController.Destroy), admin)
	protected.Post("/products/{productId}/image", "products.image", ctx.Wrap(productController.UploadImage), admin)

	// Session cart.
	protected.Get("/cart", "cart.show", ctx.Wrap(cartController.Show))
	protected.Post("/cart/items", "cart.add", ctx.Wrap(cartController.AddItem))
	protected.Delete("/cart/items/{productId}", "cart.remove", ctx.Wrap(cartController.RemoveItem))
	protected.Delete("/cart", "cart.clear", ctx.Wrap(cartController.Clear))

	// Orders.
	protected.Post("/orders", "orders.store", ctx.Wrap(orderController.Store))
	protected.Get("/orders", "orders.index", ctx.Wrap(orderController.Index))
	protected.Get("/orders/{orderId}/payment-status", "orders.payment-status", ctx.Wrap(orderController.PaymentStatus))
	protected.Get("/orders/{orderId}/payment-status/stream", "orders.payment-stream", ctx.Wrap(orderController.StreamPaymentStatus))
	protected.Post("/orders/{orderId}/simulate-payment", "orders.simulate", ctx.Wrap(orderController.SimulatePayment))
	protected.Post("/orders/{orderId}/finish", "orders.finish", ctx.Wrap(orderController.Finish))
	protected.Get("/sales/report", "sales.report", ctx.Wrap(orderController.SalesReport))

	// Kitchen display live feed.
	protected.Get("/ws/orders", "orders.feed", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, feed)
	})

	// Read-only GraphQL catalog.
	schema, err := graphql.NewSchema(services.NewCatalogService())
	if err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		protected.Post("/graphql", "graphql", graphql.Handler(schema))
	}
}
