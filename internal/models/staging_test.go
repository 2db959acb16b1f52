package models

import "testing"

func TestStagedOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		staged  StagedOrder
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid staged order",
			staged: StagedOrder{
				ConcertID:    "c1",
				ConcertTitle: "Java Jazz Festival",
				Items: []TicketSelection{
					{TicketTypeID: "t1", Name: "VIP", Quantity: 2, Price: 500000},
				},
				TotalPrice: 1000000,
			},
			wantErr: false,
		},
		{
			name: "missing concert",
			staged: StagedOrder{
				Items: []TicketSelection{
					{TicketTypeID: "t1", Quantity: 1, Price: 100000},
				},
				TotalPrice: 100000,
			},
			wantErr: true,
			errMsg:  "staged order has no concert",
		},
		{
			name: "empty items",
			staged: StagedOrder{
				ConcertID:  "c1",
				TotalPrice: 0,
			},
			wantErr: true,
			errMsg:  "staged order has no items",
		},
		{
			name: "zero quantity item",
			staged: StagedOrder{
				ConcertID: "c1",
				Items: []TicketSelection{
					{TicketTypeID: "t1", Quantity: 0, Price: 100000},
				},
				TotalPrice: 0,
			},
			wantErr: true,
			errMsg:  "staged item quantity must be positive",
		},
		{
			name: "negative price",
			staged: StagedOrder{
				ConcertID: "c1",
				Items: []TicketSelection{
					{TicketTypeID: "t1", Quantity: 1, Price: -5},
				},
				TotalPrice: -5,
			},
			wantErr: true,
			errMsg:  "staged item price cannot be negative",
		},
		{
			name: "total mismatch",
			staged: StagedOrder{
				ConcertID: "c1",
				Items: []TicketSelection{
					{TicketTypeID: "t1", Quantity: 2, Price: 500000},
				},
				TotalPrice: 999999,
			},
			wantErr: true,
			errMsg:  "staged total does not match item subtotals",
		},
		{
			name: "multi item totals",
			staged: StagedOrder{
				ConcertID: "c1",
				Items: []TicketSelection{
					{TicketTypeID: "t1", Quantity: 2, Price: 500000},
					{TicketTypeID: "t2", Quantity: 3, Price: 150000},
				},
				TotalPrice: 1450000,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.staged.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("StagedOrder.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("StagedOrder.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestStagedOrder_TotalItems(t *testing.T) {
	staged := StagedOrder{
		Items: []TicketSelection{
			{TicketTypeID: "t1", Quantity: 2},
			{TicketTypeID: "t2", Quantity: 3},
		},
	}

	if got := staged.TotalItems(); got != 5 {
		t.Errorf("TotalItems() = %d, want 5", got)
	}
}

func TestTicketSelection_Subtotal(t *testing.T) {
	sel := TicketSelection{Quantity: 3, Price: 150000}
	if got := sel.Subtotal(); got != 450000 {
		t.Errorf("Subtotal() = %d, want 450000", got)
	}
}
