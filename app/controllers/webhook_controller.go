package controllers

import (
	"time"

	"waroengpos/app/services"
	"waroengpos/config"
	"waroengpos/pkg/crypt"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/resource"
)

// WebhookController receives payment confirmations from the gateway. This
// is the only place an order enters PROCESSING.
type WebhookController struct {
	orders *services.OrderService
}

func NewWebhookController() *WebhookController {
	return &WebhookController{orders: services.NewOrderService()}
}

type paymentWebhookRequest struct {
	Event string `json:"event" validate:"required"`
	Data  struct {
		PaymentRequestID string `json:"payment_request_id" validate:"required"`
		Status           string `json:"status"`
		PaidAt           string `json:"paid_at"`
	} `json:"data"`
}

// HandlePayment verifies the callback token and applies the confirmation.
// Unknown events and replays are acknowledged with 200 so the gateway stops
// redelivering; only a bad token or an unknown order is an error.
func (c *WebhookController) HandlePayment(cc *ctx.Context) {
	if !crypt.SecureCompare(cc.Header("X-Callback-Token"), config.PaymentCallbackToken()) {
		cc.Unauthorized("invalid callback token")
		return
	}

	var body paymentWebhookRequest
	if !cc.BindJSON(&body) {
		return
	}

	if body.Event != "payment.succeeded" {
		logger.WithCtx(cc.Context()).Info("webhook: ignoring event", "event", body.Event)
		cc.Success(map[string]bool{"applied": false})
		return
	}

	paidAt := time.Now()
	if body.Data.PaidAt != "" {
		if parsed, err := time.Parse(time.RFC3339, body.Data.PaidAt); err == nil {
			paidAt = parsed
		}
	}

	order, applied, err := c.orders.HandlePaymentCallback(body.Data.PaymentRequestID, paidAt)
	if err != nil {
		cc.Fail(err)
		return
	}

	cc.Success(map[string]interface{}{
		"applied": applied,
		"order":   resource.New(&OrderResource{}, order),
	})
}
