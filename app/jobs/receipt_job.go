// Package jobs defines the background jobs the queue processes.
package jobs

import (
	"fmt"
	"strings"
	"time"

	"waroengpos/app/repositories"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/queue"
	"waroengpos/pkg/storage"
)

// ReceiptJob renders a paid order's receipt and archives it on the storage
// disk. Enqueued by the order-paid listener so the webhook never waits on
// rendering.
type ReceiptJob struct {
	OrderID uint `json:"orderId"`
}

// RegisterJobs makes all job types known to the queue. Called once at boot.
func RegisterJobs() {
	queue.Register("*jobs.ReceiptJob", func() queue.Job { return &ReceiptJob{} })
}

func (j *ReceiptJob) Handle() error {
	orders := repositories.NewOrderRepository()

	order, err := orders.Find(j.OrderID)
	if err != nil {
		return fmt.Errorf("receipt: load order %d: %w", j.OrderID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "WAROENG POS\nOrder #%d\n", order.ID)
	if order.PaidAt != nil {
		fmt.Fprintf(&b, "Paid at %s\n", order.PaidAt.Format(time.RFC3339))
	}
	b.WriteString("--------------------------------\n")
	for _, it := range order.Items {
		fmt.Fprintf(&b, "%-20s x%-3d %10d\n", it.Name, it.Quantity, it.Price*int64(it.Quantity))
	}
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "Subtotal    %10d\n", order.Subtotal)
	fmt.Fprintf(&b, "Tax (10%%)   %10d\n", order.Tax)
	fmt.Fprintf(&b, "Total       %10d\n", order.GrandTotal)

	key := fmt.Sprintf("receipts/%d.txt", order.ID)
	if err := storage.Put(key, []byte(b.String())); err != nil {
		return fmt.Errorf("receipt: store %s: %w", key, err)
	}

	logger.Info("receipt: archived", "order_id", order.ID, "key", key)
	return nil
}
