package controllers

import (
	"time"

	"waroengpos/app/repositories"
	"waroengpos/app/services"
	"waroengpos/pkg/cart"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/resource"
	"waroengpos/pkg/session"
	"waroengpos/pkg/sse"
)

type OrderController struct {
	orders *services.OrderService
	carts  *cart.Store
}

func NewOrderController(carts *cart.Store) *OrderController {
	return &OrderController{orders: services.NewOrderService(), carts: carts}
}

type createOrderRequest struct {
	OrderItems []services.CheckoutLine `json:"orderItems" validate:"required"`
}

// Store creates an order from the submitted lines and returns the QR
// payload to display. A successful checkout empties the session's cart.
func (c *OrderController) Store(cc *ctx.Context) {
	var body createOrderRequest
	if !cc.BindJSON(&body) {
		return
	}

	result, err := c.orders.CreateOrder(body.OrderItems)
	if err != nil {
		cc.Fail(err)
		return
	}

	c.carts.Clear(session.FromRequest(cc.R))

	cc.Created(map[string]interface{}{
		"order":    resource.New(&OrderResource{}, result.Order),
		"qrString": result.QRString,
	})
}

// Index lists orders for the sales screen. ?status=ALL (the default) lists
// everything.
func (c *OrderController) Index(cc *ctx.Context) {
	orders, err := c.orders.GetOrders(cc.DefaultQuery("status", repositories.OrderStatusFilterAll))
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.CollectionOf(&OrderResource{}, orders))
}

// PaymentStatus reports whether the order has been paid.
func (c *OrderController) PaymentStatus(cc *ctx.Context) {
	paid, err := c.orders.CheckPaymentStatus(cc.ParamUint("orderId"))
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(map[string]bool{"paid": paid})
}

// StreamPaymentStatus holds an SSE stream open while the QR code is on
// screen, polling the order once a second and closing after payment or two
// minutes, whichever comes first.
func (c *OrderController) StreamPaymentStatus(cc *ctx.Context) {
	orderID := cc.ParamUint("orderId")

	if _, err := c.orders.CheckPaymentStatus(orderID); err != nil {
		cc.Fail(err)
		return
	}

	stream := sse.New(cc.W, cc.R)
	deadline := time.Now().Add(2 * time.Minute)

	for !stream.IsClosed() && time.Now().Before(deadline) {
		paid, err := c.orders.CheckPaymentStatus(orderID)
		if err != nil {
			stream.Send("error", map[string]string{"message": "order unavailable"}) //nolint:errcheck
			return
		}

		stream.Send("payment-status", map[string]bool{"paid": paid}) //nolint:errcheck
		if paid {
			return
		}

		time.Sleep(time.Second)
		stream.Comment("keepalive")
	}
}

// SimulatePayment triggers a sandbox payment for the order. Non-production
// environments only.
func (c *OrderController) SimulatePayment(cc *ctx.Context) {
	if err := c.orders.SimulatePayment(cc.ParamUint("orderId")); err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(map[string]bool{"simulated": true})
}

// Finish completes a paid, in-progress order.
func (c *OrderController) Finish(cc *ctx.Context) {
	order, err := c.orders.FinishOrder(cc.ParamUint("orderId"))
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(resource.New(&OrderResource{}, order))
}

// SalesReport aggregates revenue and order counts. ?since=RFC3339 narrows
// the window; the default is the last 24 hours.
func (c *OrderController) SalesReport(cc *ctx.Context) {
	since := time.Now().Add(-24 * time.Hour)
	if raw := cc.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			cc.ValidationError(map[string]string{"since": "must be an RFC3339 timestamp"})
			return
		}
		since = parsed
	}

	summary, err := c.orders.SalesReport(since)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(summary)
}
