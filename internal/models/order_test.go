package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestShippingOption_Fee(t *testing.T) {
	tests := []struct {
		name   string
		option ShippingOption
		want   int64
	}{
		{name: "regular", option: ShippingRegular, want: 15000},
		{name: "express", option: ShippingExpress, want: 30000},
		{name: "same day", option: ShippingSameDay, want: 50000},
		{name: "pickup is free", option: ShippingPickup, want: 0},
		{name: "unset option defaults to zero", option: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.option.Fee(); !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("ShippingOption.Fee() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  OrderStatus
		wantErr bool
	}{
		{name: "menunggu", status: OrderMenunggu, wantErr: false},
		{name: "diproses", status: OrderDiproses, wantErr: false},
		{name: "selesai", status: OrderSelesai, wantErr: false},
		{name: "dibatalkan", status: OrderDibatalkan, wantErr: false},
		{name: "unknown", status: "SHIPPED", wantErr: true},
		{name: "empty", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatus(tt.status)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrder_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		checks map[OrderStatus]bool
	}{
		{
			name:   "menunggu order",
			status: OrderMenunggu,
			checks: map[OrderStatus]bool{
				OrderDiproses:   true,
				OrderSelesai:    false,
				OrderDibatalkan: true,
			},
		},
		{
			name:   "diproses order",
			status: OrderDiproses,
			checks: map[OrderStatus]bool{
				OrderDiproses:   false,
				OrderSelesai:    true,
				OrderDibatalkan: true,
			},
		},
		{
			name:   "selesai order is terminal",
			status: OrderSelesai,
			checks: map[OrderStatus]bool{
				OrderDiproses:   false,
				OrderSelesai:    false,
				OrderDibatalkan: false,
			},
		},
		{
			name:   "dibatalkan order is terminal",
			status: OrderDibatalkan,
			checks: map[OrderStatus]bool{
				OrderDiproses:   false,
				OrderSelesai:    false,
				OrderDibatalkan: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Status: tt.status}
			for next, want := range tt.checks {
				if got := order.CanTransitionTo(next); got != want {
					t.Errorf("Order.CanTransitionTo(%s) = %v, want %v", next, got, want)
				}
			}
		})
	}
}

func TestOrder_IsTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderMenunggu, OrderDiproses} {
		if (&Order{Status: status}).IsTerminal() {
			t.Errorf("Order with status %s should not be terminal", status)
		}
	}
	for _, status := range []OrderStatus{OrderSelesai, OrderDibatalkan} {
		if !(&Order{Status: status}).IsTerminal() {
			t.Errorf("Order with status %s should be terminal", status)
		}
	}
}
