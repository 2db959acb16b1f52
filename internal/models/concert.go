package models

import (
	"strconv"
	"time"
)

// ConcertStatus represents the publication status of a concert
type ConcertStatus string

const (
	ConcertDraft     ConcertStatus = "DRAFT"
	ConcertPublished ConcertStatus = "PUBLISHED"
	ConcertEnded     ConcertStatus = "ENDED"
)

// Concert is a read-only projection of a concert owned by the backend
type Concert struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Venue       string        `json:"venue"`
	StartAt     string        `json:"startAt"`
	EndAt       string        `json:"endAt"`
	Description string        `json:"description"`
	Status      ConcertStatus `json:"status"`
	TicketTypes []TicketType  `json:"ticketTypes"`
}

// TicketType is a read-only projection of a ticket type owned by the backend
type TicketType struct {
	ID           string `json:"id"`
	ConcertID    string `json:"concertId"`
	Name         string `json:"name"`
	Price        int    `json:"price"` // in rupiah, no decimals
	QuotaTotal   int    `json:"quotaTotal"`
	QuotaSold    int    `json:"quotaSold"`
	SalesStartAt string `json:"salesStartAt"`
	SalesEndAt   string `json:"salesEndAt"`
}

// Available returns the remaining purchasable quota as last known to the client
func (tt *TicketType) Available() int {
	available := tt.QuotaTotal - tt.QuotaSold
	if available < 0 {
		return 0
	}
	return available
}

// IsSoldOut returns true if no quota remains
func (tt *TicketType) IsSoldOut() bool {
	return tt.Available() == 0
}

// LowestPrice returns the minimum ticket type price, or 0 when the concert
// has no ticket types
func (c *Concert) LowestPrice() int {
	if len(c.TicketTypes) == 0 {
		return 0
	}
	lowest := c.TicketTypes[0].Price
	for _, tt := range c.TicketTypes[1:] {
		if tt.Price < lowest {
			lowest = tt.Price
		}
	}
	return lowest
}

// TotalAvailableQuota sums the remaining quota over all ticket types
func (c *Concert) TotalAvailableQuota() int {
	total := 0
	for _, tt := range c.TicketTypes {
		total += tt.Available()
	}
	return total
}

// IsPublished returns true if the concert is open for browsing
func (c *Concert) IsPublished() bool {
	return c.Status == ConcertPublished
}

// ParseBackendTime parses a backend timestamp. The GraphQL backend returns
// epoch-millisecond strings for date fields; older responses use RFC 3339.
func ParseBackendTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis)
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}

	return time.Time{}
}
