package models

import (
	"errors"
	"time"
)

// OrderStatus represents the backend lifecycle status of an order
type OrderStatus string

const (
	OrderPending         OrderStatus = "PENDING"
	OrderAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderPaid            OrderStatus = "PAID"
	OrderCancelled       OrderStatus = "CANCELLED"
	OrderExpired         OrderStatus = "EXPIRED"
	OrderRefunded        OrderStatus = "REFUNDED"
)

// Order is a read-only projection of an order owned by the backend
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	ConcertID       string      `json:"concertId"`
	MidtransOrderID string      `json:"midtransOrderId"`
	Status          OrderStatus `json:"status"`
	GrossAmount     int         `json:"grossAmount"`
	CreatedAt       string      `json:"createdAt"`
	ExpiresAt       string      `json:"expiresAt"`
	Concert         *Concert    `json:"concert,omitempty"`
	OrderItems      []OrderItem `json:"orderItems,omitempty"`
}

// OrderItem is a read-only projection of an order line item
type OrderItem struct {
	ID           string      `json:"id"`
	OrderID      string      `json:"orderId"`
	TicketTypeID string      `json:"ticketTypeId"`
	Qty          int         `json:"qty"`
	UnitPrice    int         `json:"unitPrice"`
	Subtotal     int         `json:"subtotal"`
	TicketType   *TicketType `json:"ticketType,omitempty"`
}

// validateOrderStatus validates an order status
func validateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderPending, OrderAwaitingPayment, OrderPaid, OrderCancelled, OrderExpired, OrderRefunded:
		return nil
	default:
		return errors.New("invalid order status")
	}
}

// Validate validates the order projection
func (o *Order) Validate() error {
	if o.ID == "" {
		return errors.New("order id is required")
	}

	if err := validateOrderStatus(o.Status); err != nil {
		return err
	}

	if o.GrossAmount < 0 {
		return errors.New("gross amount cannot be negative")
	}

	return nil
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// IsPayable returns true if the order can still be paid from the
// order-history view
func (o *Order) IsPayable() bool {
	return o.Status == OrderPending || o.Status == OrderAwaitingPayment
}

// NeedsNewToken returns true if paying the order requires creating a fresh
// payment token. AWAITING_PAYMENT orders already hold an issued token and
// must fetch it instead.
func (o *Order) NeedsNewToken() bool {
	return o.Status == OrderPending
}

// CreatedTime returns the parsed creation timestamp
func (o *Order) CreatedTime() time.Time {
	return ParseBackendTime(o.CreatedAt)
}

// StatusDisplayName returns a human-readable status label
func (o *Order) StatusDisplayName() string {
	switch o.Status {
	case OrderPending:
		return "Pending"
	case OrderAwaitingPayment:
		return "Awaiting Payment"
	case OrderPaid:
		return "Paid"
	case OrderCancelled:
		return "Cancelled"
	case OrderExpired:
		return "Expired"
	case OrderRefunded:
		return "Refunded"
	default:
		return string(o.Status)
	}
}
