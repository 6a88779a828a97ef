package services

import (
	"fmt"
	"time"

	"waroengpos/app/models"
	"waroengpos/app/repositories"
	"waroengpos/config"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/event"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/metrics"
	"waroengpos/pkg/xendit"
)

// OrderService orchestrates checkout, payment confirmation and order
// completion.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

// CheckoutResult is what the cashier screen needs after a checkout: the
// persisted order and the QR payload to display.
type CheckoutResult struct {
	Order    models.Order `json:"order"`
	QRString string       `json:"qrString"`
}

// CreateOrder prices the requested lines against the live catalog, persists
// the order with its price-snapshot items in one transaction, then asks the
// gateway for a QR code.
//
// The gateway call happens after the commit. If it fails, the order stays
// behind as AWAITING_PAYMENT with no payment reference; the scheduled sweep
// expires such orders after the payment TTL.
func (s *OrderService) CreateOrder(lines []CheckoutLine) (*CheckoutResult, error) {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	products, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	prices := make(map[uint]int64, len(products))
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
		byID[p.ID] = p
	}

	totals, err := CalculateTotals(lines, prices)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		GrandTotal: totals.GrandTotal,
		Status:     models.StatusAwaitingPayment,
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		p := byID[l.ProductID]
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price, // snapshot, immune to later catalog edits
			Quantity:  l.Quantity,
		})
	}

	if err := s.orders.Create(&order, items); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	pr, err := xendit.CreatePaymentRequest(order.GrandTotal, fmt.Sprintf("order-%d", order.ID))
	if err != nil {
		logger.Error("order: payment request failed after commit",
			"order_id", order.ID, "error", err)
		return nil, err
	}

	if err := s.orders.AttachPayment(order.ID, pr.TransactionID, pr.PaymentMethodID); err != nil {
		return nil, err
	}
	order.ExternalTransactionID = pr.TransactionID
	order.PaymentMethodID = pr.PaymentMethodID

	event.FireAsync(event.OrderCreated, order)
	return &CheckoutResult{Order: order, QRString: pr.QRString}, nil
}

// CheckPaymentStatus reports whether the order has been paid.
func (s *OrderService) CheckPaymentStatus(orderID uint) (bool, error) {
	order, err := s.orders.Find(orderID)
	if err != nil {
		return false, err
	}
	return order.PaidAt != nil, nil
}

// SimulatePayment asks the gateway sandbox to complete the order's payment.
// The resulting confirmation arrives through the normal webhook, exactly as
// a real payment would. Refused in production.
func (s *OrderService) SimulatePayment(orderID uint) error {
	if config.IsProduction() {
		return apperr.Unprocessable("payment simulation is disabled in production")
	}

	order, err := s.orders.Find(orderID)
	if err != nil {
		return err
	}
	if order.PaymentMethodID == "" {
		return apperr.Unprocessable("order has no payment method attached")
	}

	return xendit.SimulatePayment(order.PaymentMethodID, order.GrandTotal)
}

// HandlePaymentCallback applies a gateway payment confirmation. The
// transition AWAITING_PAYMENT → PROCESSING happens at most once per order;
// replayed deliveries are acknowledged without effect.
func (s *OrderService) HandlePaymentCallback(externalTxnID string, paidAt time.Time) (models.Order, bool, error) {
	order, err := s.orders.FindByExternalTransactionID(externalTxnID)
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues("unknown_order").Inc()
		return models.Order{}, false, err
	}

	applied, err := s.orders.MarkPaid(order.ID, paidAt)
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues("error").Inc()
		return models.Order{}, false, err
	}
	if !applied {
		metrics.WebhooksReceived.WithLabelValues("replay").Inc()
		return order, false, nil
	}

	metrics.WebhooksReceived.WithLabelValues("ok").Inc()
	order.Status = models.StatusProcessing
	order.PaidAt = &paidAt
	event.FireAsync(event.OrderPaid, order)
	return order, true, nil
}

// FinishOrder moves a paid, in-progress order to DONE.
//
// Preconditions are surfaced as distinct messages: an unpaid order fails
// with "not paid yet", and an order outside PROCESSING (already done, or
// expired) fails with "not processing yet". The transition itself is a
// conditional update, so concurrent finishes cannot both succeed.
func (s *OrderService) FinishOrder(orderID uint) (models.Order, error) {
	order, err := s.orders.Find(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.PaidAt == nil {
		return models.Order{}, apperr.Unprocessable("order is not paid yet")
	}
	if order.Status != models.StatusProcessing {
		return models.Order{}, apperr.Unprocessable("order is not processing yet")
	}

	done, err := s.orders.Finish(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !done {
		// Lost the race to another finisher.
		return models.Order{}, apperr.Unprocessable("order is not processing yet")
	}

	order.Status = models.StatusDone
	event.FireAsync(event.OrderFinished, order)
	return order, nil
}

// GetOrders lists orders filtered by status, or all of them for the ALL
// sentinel.
func (s *OrderService) GetOrders(status string) ([]models.Order, error) {
	switch models.OrderStatus(status) {
	case models.StatusAwaitingPayment, models.StatusProcessing, models.StatusDone, models.StatusExpired:
	default:
		if status != "" && status != repositories.OrderStatusFilterAll {
			return nil, apperr.Validation(fmt.Sprintf("unknown order status %q", status))
		}
	}
	return s.orders.AllByStatus(status)
}

// ExpireStaleOrders cancels AWAITING_PAYMENT orders older than the payment
// TTL. The scheduler runs this every minute.
func (s *OrderService) ExpireStaleOrders() {
	cutoff := time.Now().Add(-config.OrderPaymentTTL())

	n, err := s.orders.ExpireStale(cutoff)
	if err != nil {
		logger.Error("order: stale sweep failed", "error", err)
		return
	}
	if n > 0 {
		metrics.OrdersExpired.Add(float64(n))
		logger.Info("order: expired stale orders", "count", n)
		event.FireAsync(event.OrderExpired, n)
	}
}

// SalesReport aggregates revenue and order counts since the given time.
func (s *OrderService) SalesReport(since time.Time) (repositories.SalesSummary, error) {
	return s.orders.Summarize(since)
}
