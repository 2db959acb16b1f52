package models

import "testing"

func TestTicketType_Available(t *testing.T) {
	tests := []struct {
		name string
		tt   TicketType
		want int
	}{
		{"normal", TicketType{QuotaTotal: 100, QuotaSold: 30}, 70},
		{"sold out", TicketType{QuotaTotal: 50, QuotaSold: 50}, 0},
		{"oversold clamps to zero", TicketType{QuotaTotal: 50, QuotaSold: 55}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tt.Available(); got != tt.want {
				t.Errorf("Available() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConcert_LowestPrice(t *testing.T) {
	tests := []struct {
		name    string
		concert Concert
		want    int
	}{
		{
			name: "minimum across types",
			concert: Concert{TicketTypes: []TicketType{
				{Price: 200000},
				{Price: 100000},
			}},
			want: 100000,
		},
		{
			name:    "no ticket types",
			concert: Concert{},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.concert.LowestPrice(); got != tt.want {
				t.Errorf("LowestPrice() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConcert_TotalAvailableQuota(t *testing.T) {
	concert := Concert{TicketTypes: []TicketType{
		{QuotaTotal: 100, QuotaSold: 40},
		{QuotaTotal: 50, QuotaSold: 50},
	}}

	if got := concert.TotalAvailableQuota(); got != 60 {
		t.Errorf("TotalAvailableQuota() = %d, want 60", got)
	}
}
