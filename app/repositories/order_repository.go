package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"waroengpos/app/models"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/orm"
)

// OrderStatusFilterAll is the sentinel the sales screen sends to list every
// order regardless of status.
const OrderStatusFilterAll = "ALL"

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists the order and its items in one transaction: either the
// whole checkout lands or none of it does.
func (r *OrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	return orm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

// Find loads an order with its items.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, apperr.NotFound("order not found")
	}
	return order, err
}

// FindByExternalTransactionID locates the order a gateway webhook refers to.
func (r *OrderRepository) FindByExternalTransactionID(txnID string) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Where("external_transaction_id = ?", txnID).
		First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, apperr.NotFound("order not found")
	}
	return order, err
}

// AllByStatus lists orders newest first, filtered by status unless the ALL
// sentinel is passed.
func (r *OrderRepository) AllByStatus(status string) ([]models.Order, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Items").Order("created_at desc")
	if status != "" && status != OrderStatusFilterAll {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	err := q.Get(&orders)
	return orders, err
}

// AttachPayment records the gateway references on a freshly created order.
func (r *OrderRepository) AttachPayment(orderID uint, txnID, paymentMethodID string) error {
	_, err := orm.DB().
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"external_transaction_id": txnID,
			"payment_method_id":       paymentMethodID,
		})
	return err
}

// MarkPaid stamps PaidAt and moves the order to PROCESSING, but only while
// it is still AWAITING_PAYMENT. Replayed webhooks match zero rows and are
// reported as such rather than overwriting the first delivery.
func (r *OrderRepository) MarkPaid(orderID uint, paidAt time.Time) (bool, error) {
	n, err := orm.DB().
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.StatusAwaitingPayment).
		Updates(map[string]interface{}{
			"paid_at": paidAt,
			"status":  models.StatusProcessing,
		})
	return n > 0, err
}

// Finish moves PROCESSING → DONE with a conditional update, so two
// concurrent finish requests cannot both succeed: the status check and the
// write are a single statement.
func (r *OrderRepository) Finish(orderID uint) (bool, error) {
	n, err := orm.DB().
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.StatusProcessing).
		Updates(map[string]interface{}{"status": models.StatusDone})
	return n > 0, err
}

// ExpireStale cancels AWAITING_PAYMENT orders created before cutoff.
// Returns how many were expired.
func (r *OrderRepository) ExpireStale(cutoff time.Time) (int64, error) {
	return orm.DB().
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.StatusAwaitingPayment, cutoff).
		Updates(map[string]interface{}{"status": models.StatusExpired})
}

// SalesSummary aggregates the day's trading for the dashboard.
type SalesSummary struct {
	TotalRevenue    int64 `json:"totalRevenue"`
	CompletedOrders int64 `json:"completedOrders"`
	OngoingOrders   int64 `json:"ongoingOrders"`
}

// Summarize computes revenue and order counts since the given time.
// Revenue counts only paid orders (PROCESSING or DONE).
func (r *OrderRepository) Summarize(since time.Time) (SalesSummary, error) {
	var s SalesSummary

	err := orm.DB().
		Model(&models.Order{}).
		Select("COALESCE(SUM(grand_total), 0)").
		Where("paid_at IS NOT NULL AND created_at >= ?", since).
		Scan(&s.TotalRevenue)
	if err != nil {
		return s, err
	}

	if err := orm.DB().
		Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.StatusDone, since).
		Count(&s.CompletedOrders); err != nil {
		return s, err
	}

	err = orm.DB().
		Model(&models.Order{}).
		Where("status IN ? AND created_at >= ?",
			[]models.OrderStatus{models.StatusAwaitingPayment, models.StatusProcessing}, since).
		Count(&s.OngoingOrders)
	return s, err
}
