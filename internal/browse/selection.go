// Package browse implements the concert-browsing logic: list filtering and
// sorting, and the per-ticket-type quantity selection that feeds checkout
// staging. Quantities are clamped client-side as a convenience; quota is
// enforced authoritatively by the backend at order creation.
package browse

import (
	"concert-ticketing-client/internal/models"
)

// Selections tracks the quantity picked for each ticket type of one concert
type Selections struct {
	items  []models.TicketSelection
	quotas map[string]int
}

// NewSelections initializes zero-quantity selections for a concert's ticket
// types, remembering each type's available quota for clamping
func NewSelections(ticketTypes []models.TicketType) *Selections {
	s := &Selections{quotas: make(map[string]int, len(ticketTypes))}
	for _, tt := range ticketTypes {
		s.items = append(s.items, models.TicketSelection{
			TicketTypeID: tt.ID,
			Name:         tt.Name,
			Price:        tt.Price,
		})
		s.quotas[tt.ID] = tt.Available()
	}
	return s
}

// Adjust changes a ticket type's quantity by delta, clamped to
// [0, available quota]. Unknown ticket types are ignored.
func (s *Selections) Adjust(ticketTypeID string, delta int) {
	for i := range s.items {
		if s.items[i].TicketTypeID != ticketTypeID {
			continue
		}
		s.items[i].Quantity = clamp(s.items[i].Quantity+delta, s.quotas[ticketTypeID])
		return
	}
}

// SetQuantity sets a ticket type's quantity directly, with the same clamp
func (s *Selections) SetQuantity(ticketTypeID string, quantity int) {
	for i := range s.items {
		if s.items[i].TicketTypeID != ticketTypeID {
			continue
		}
		s.items[i].Quantity = clamp(quantity, s.quotas[ticketTypeID])
		return
	}
}

// Quantity returns the current quantity for a ticket type
func (s *Selections) Quantity(ticketTypeID string) int {
	for i := range s.items {
		if s.items[i].TicketTypeID == ticketTypeID {
			return s.items[i].Quantity
		}
	}
	return 0
}

// TotalItems returns the total number of tickets selected
func (s *Selections) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of quantity times price over all selections
func (s *Selections) TotalPrice() int {
	total := 0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Stage builds a staged order from the non-empty selections. Returns
// models.ErrNothingStaged when no tickets were selected.
func (s *Selections) Stage(concert *models.Concert) (*models.StagedOrder, error) {
	var items []models.TicketSelection
	for _, item := range s.items {
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return nil, models.ErrNothingStaged
	}

	return &models.StagedOrder{
		ConcertID:    concert.ID,
		ConcertTitle: concert.Title,
		Items:        items,
		TotalPrice:   s.TotalPrice(),
	}, nil
}

// clamp bounds a quantity to [0, quota]
func clamp(quantity, quota int) int {
	if quantity < 0 {
		return 0
	}
	if quantity > quota {
		return quota
	}
	return quantity
}
