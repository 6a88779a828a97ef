package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus enumerates the order lifecycle. Transitions are monotonic:
// AWAITING_PAYMENT → PROCESSING → DONE, or AWAITING_PAYMENT → EXPIRED for
// orders never paid. There are no reverse transitions.
type OrderStatus string

const (
	StatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	StatusProcessing      OrderStatus = "PROCESSING"
	StatusDone            OrderStatus = "DONE"
	StatusExpired         OrderStatus = "EXPIRED"
)

// MaxGrandTotal is the payment gateway's ceiling per QR request, in minor
// currency units. Orders above it are rejected before anything is persisted.
const MaxGrandTotal int64 = 10_000_000

// Order is one checkout. Money fields are minor currency units; Tax is
// always exactly 10% of Subtotal and GrandTotal their sum.
type Order struct {
	gorm.Model
	Subtotal   int64       `gorm:"not null" json:"subtotal"`
	Tax        int64       `gorm:"not null" json:"tax"`
	GrandTotal int64       `gorm:"not null" json:"grandTotal"`
	Status     OrderStatus `gorm:"size:32;not null;default:AWAITING_PAYMENT;index" json:"status"`
	PaidAt     *time.Time  `json:"paidAt"`

	// References into the payment gateway, filled in once the QR request
	// succeeds. Nullable: a gateway failure after commit leaves them empty.
	ExternalTransactionID string `gorm:"size:255;index" json:"externalTransactionId"`
	PaymentMethodID       string `gorm:"size:255;index" json:"paymentMethodId"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one line of an order. Price is a snapshot taken at order
// time, so later catalog price changes never affect historical orders.
type OrderItem struct {
	gorm.Model
	OrderID   uint   `gorm:"not null;index" json:"orderId"`
	ProductID uint   `gorm:"not null;index" json:"productId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Price     int64  `gorm:"not null" json:"price"`
	Quantity  int    `gorm:"not null" json:"quantity"`
}
