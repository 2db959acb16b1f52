package models

import (
	"testing"
	"time"
)

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid order",
			order:   Order{ID: "o1", Status: OrderPaid, GrossAmount: 1000000},
			wantErr: false,
		},
		{
			name:    "missing id",
			order:   Order{Status: OrderPending, GrossAmount: 100},
			wantErr: true,
			errMsg:  "order id is required",
		},
		{
			name:    "invalid status",
			order:   Order{ID: "o1", Status: "SHIPPED", GrossAmount: 100},
			wantErr: true,
			errMsg:  "invalid order status",
		},
		{
			name:    "negative gross amount",
			order:   Order{ID: "o1", Status: OrderPending, GrossAmount: -1},
			wantErr: true,
			errMsg:  "gross amount cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Order.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("Order.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestOrder_StatusChecks(t *testing.T) {
	tests := []struct {
		status        OrderStatus
		payable       bool
		needsNewToken bool
		paid          bool
	}{
		{OrderPending, true, true, false},
		{OrderAwaitingPayment, true, false, false},
		{OrderPaid, false, false, true},
		{OrderCancelled, false, false, false},
		{OrderExpired, false, false, false},
		{OrderRefunded, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			order := Order{Status: tt.status}
			if got := order.IsPayable(); got != tt.payable {
				t.Errorf("IsPayable() = %v, want %v", got, tt.payable)
			}
			if got := order.NeedsNewToken(); got != tt.needsNewToken {
				t.Errorf("NeedsNewToken() = %v, want %v", got, tt.needsNewToken)
			}
			if got := order.IsPaid(); got != tt.paid {
				t.Errorf("IsPaid() = %v, want %v", got, tt.paid)
			}
		})
	}
}

func TestParseBackendTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "epoch milliseconds",
			value: "1735689600000",
			want:  time.UnixMilli(1735689600000),
		},
		{
			name:  "rfc3339",
			value: "2025-01-01T00:00:00Z",
			want:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "empty",
			value: "",
			want:  time.Time{},
		},
		{
			name:  "garbage",
			value: "not-a-date",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBackendTime(tt.value)
			if !got.Equal(tt.want) {
				t.Errorf("ParseBackendTime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestOrder_StatusDisplayName(t *testing.T) {
	order := Order{Status: OrderAwaitingPayment}
	if got := order.StatusDisplayName(); got != "Awaiting Payment" {
		t.Errorf("StatusDisplayName() = %q, want %q", got, "Awaiting Payment")
	}
}
