// Package listeners wires order lifecycle events to their side effects:
// the kitchen display feed and background jobs.
package listeners

import (
	"waroengpos/app/jobs"
	"waroengpos/app/models"
	"waroengpos/pkg/event"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/queue"
	"waroengpos/pkg/workerpool"
	"waroengpos/pkg/ws"
)

// Register attaches all listeners. feed is the kitchen display hub; pool
// bounds the fan-out so webhook bursts cannot spawn unbounded goroutines.
func Register(feed *ws.Hub, pool *workerpool.Pool) {
	push := func(orderID uint, status models.OrderStatus) {
		err := pool.Submit(func() {
			feed.BroadcastJSON(map[string]interface{}{
				"orderId": orderID,
				"status":  status,
			})
		})
		if err != nil {
			logger.Warn("listeners: feed push dropped", "order_id", orderID, "error", err)
		}
	}

	event.Listen(event.OrderCreated, func(payload interface{}) {
		if order, ok := payload.(models.Order); ok {
			push(order.ID, order.Status)
		}
	})

	event.Listen(event.OrderPaid, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		push(order.ID, order.Status)

		if err := queue.Dispatch(&jobs.ReceiptJob{OrderID: order.ID}); err != nil {
			logger.Error("listeners: receipt dispatch failed", "order_id", order.ID, "error", err)
		}
	})

	event.Listen(event.OrderFinished, func(payload interface{}) {
		if order, ok := payload.(models.Order); ok {
			push(order.ID, order.Status)
		}
	})
}
