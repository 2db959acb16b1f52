package browse

import (
	"testing"

	"concert-ticketing-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketTypesFixture() []models.TicketType {
	return []models.TicketType{
		{ID: "t1", Name: "VIP", Price: 500000, QuotaTotal: 10, QuotaSold: 7},  // 3 available
		{ID: "t2", Name: "Regular", Price: 150000, QuotaTotal: 100, QuotaSold: 0},
	}
}

func TestSelections_AdjustClampsToQuota(t *testing.T) {
	s := NewSelections(ticketTypesFixture())

	// Clamp semantics: max(0, min(quota, current+delta))
	tests := []struct {
		name   string
		deltas []int
		want   int
	}{
		{"single increment", []int{1}, 1},
		{"decrement below zero", []int{-1}, 0},
		{"increment past quota", []int{1, 1, 1, 1, 1}, 3},
		{"big jump clamps", []int{100}, 3},
		{"down from clamp", []int{100, -1}, 2},
		{"big negative clamps to zero", []int{2, -100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelections(ticketTypesFixture())
			for _, d := range tt.deltas {
				s.Adjust("t1", d)
			}
			assert.Equal(t, tt.want, s.Quantity("t1"))
		})
	}

	// Unknown ticket types are ignored
	s.Adjust("nope", 5)
	assert.Equal(t, 0, s.Quantity("nope"))
}

func TestSelections_SetQuantityClamps(t *testing.T) {
	s := NewSelections(ticketTypesFixture())

	s.SetQuantity("t1", 99)
	assert.Equal(t, 3, s.Quantity("t1"))

	s.SetQuantity("t1", -4)
	assert.Equal(t, 0, s.Quantity("t1"))

	s.SetQuantity("t2", 5)
	assert.Equal(t, 5, s.Quantity("t2"))
}

func TestSelections_Totals(t *testing.T) {
	s := NewSelections(ticketTypesFixture())
	s.SetQuantity("t1", 2)
	s.SetQuantity("t2", 3)

	assert.Equal(t, 5, s.TotalItems())
	assert.Equal(t, 2*500000+3*150000, s.TotalPrice())
}

func TestSelections_Stage(t *testing.T) {
	concert := &models.Concert{ID: "c1", Title: "Java Jazz Festival", TicketTypes: ticketTypesFixture()}

	s := NewSelections(concert.TicketTypes)
	s.SetQuantity("t1", 2)

	staged, err := s.Stage(concert)
	require.NoError(t, err)

	assert.Equal(t, "c1", staged.ConcertID)
	assert.Equal(t, "Java Jazz Festival", staged.ConcertTitle)
	// Zero-quantity lines are dropped
	require.Len(t, staged.Items, 1)
	assert.Equal(t, "t1", staged.Items[0].TicketTypeID)
	assert.Equal(t, "VIP", staged.Items[0].Name)
	assert.Equal(t, 1000000, staged.TotalPrice)
	assert.NoError(t, staged.Validate())
}

func TestSelections_StageEmpty(t *testing.T) {
	concert := &models.Concert{ID: "c1", TicketTypes: ticketTypesFixture()}

	s := NewSelections(concert.TicketTypes)
	_, err := s.Stage(concert)
	assert.ErrorIs(t, err, models.ErrNothingStaged)
}
