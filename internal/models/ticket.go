package models

import "time"

// TicketStatus represents the status of an issued ticket
type TicketStatus string

const (
	TicketIssued TicketStatus = "ISSUED"
	TicketUsed   TicketStatus = "USED"
	TicketVoid   TicketStatus = "VOID"
)

// Ticket is a read-only projection of a ticket owned by the backend. Code is
// opaque and rendered as a scannable code by the ticket wallet view.
type Ticket struct {
	ID         string       `json:"id"`
	Code       string       `json:"code"`
	Status     TicketStatus `json:"status"`
	IssuedAt   string       `json:"issuedAt"`
	UsedAt     string       `json:"usedAt,omitempty"`
	Concert    *Concert     `json:"concert,omitempty"`
	TicketType *TicketType  `json:"ticketType,omitempty"`
}

// IsActive returns true if the ticket can still be used for entry
func (t *Ticket) IsActive() bool {
	return t.Status == TicketIssued
}

// IssuedTime returns the parsed issuance timestamp
func (t *Ticket) IssuedTime() time.Time {
	return ParseBackendTime(t.IssuedAt)
}

// StatusDisplayName returns a human-readable status label
func (t *Ticket) StatusDisplayName() string {
	switch t.Status {
	case TicketIssued:
		return "Active"
	case TicketUsed:
		return "Used"
	case TicketVoid:
		return "Void"
	default:
		return string(t.Status)
	}
}
