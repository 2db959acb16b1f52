package models

import "errors"

// TicketSelection is one staged line of a prospective purchase: a ticket
// type and the quantity the user picked on the concert detail view
type TicketSelection struct {
	TicketTypeID string `json:"ticketTypeId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	Price        int    `json:"price"`
}

// Subtotal returns quantity times unit price
func (s *TicketSelection) Subtotal() int {
	return s.Quantity * s.Price
}

// StagedOrder is the client-local record of an in-progress ticket selection,
// written by the concert detail view and consumed by checkout. It lives in
// the staging store under the pendingOrder key.
type StagedOrder struct {
	ConcertID    string            `json:"concertId"`
	ConcertTitle string            `json:"concertTitle"`
	Items        []TicketSelection `json:"items"`
	TotalPrice   int               `json:"totalPrice"`
}

// Validate checks that the staged order is non-empty and internally
// consistent. A staged order that fails validation is treated the same as no
// staged order at all.
func (so *StagedOrder) Validate() error {
	if so.ConcertID == "" {
		return errors.New("staged order has no concert")
	}

	if len(so.Items) == 0 {
		return errors.New("staged order has no items")
	}

	total := 0
	for _, item := range so.Items {
		if item.Quantity <= 0 {
			return errors.New("staged item quantity must be positive")
		}
		if item.Price < 0 {
			return errors.New("staged item price cannot be negative")
		}
		total += item.Subtotal()
	}

	if total != so.TotalPrice {
		return errors.New("staged total does not match item subtotals")
	}

	return nil
}

// TotalItems returns the total number of tickets staged
func (so *StagedOrder) TotalItems() int {
	total := 0
	for _, item := range so.Items {
		total += item.Quantity
	}
	return total
}

// CompletedOrderRecord is written by the checkout flow after a success or
// pending payment signal and read once by the confirmation view. It lives in
// the staging store under the completedOrder key.
type CompletedOrderRecord struct {
	OrderID         string            `json:"orderId"`
	MidtransOrderID string            `json:"midtransOrderId"`
	ConcertTitle    string            `json:"concertTitle"`
	Items           []TicketSelection `json:"items"`
	TotalPrice      int               `json:"totalPrice"`
	IsPending       bool              `json:"isPending,omitempty"`
}
