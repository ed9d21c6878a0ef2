package stock

import (
	"testing"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

func TestRateFor(t *testing.T) {
	p := models.Product{PurchasePrice: dec("5.00"), SalesPrice: dec("7.25")}

	if got := RateFor(p, models.TransactionIn); !got.Equal(dec("5")) {
		t.Errorf("expected purchase price for IN, got %s", got)
	}
	if got := RateFor(p, models.TransactionOut); !got.Equal(dec("7.25")) {
		t.Errorf("expected sales price for OUT, got %s", got)
	}
}

func TestTransactionValue(t *testing.T) {
	tests := []struct {
		rate, qty, want string
	}{
		{"5.00", "10", "50.00"},
		{"7.25", "85", "616.25"},
		{"0.333", "3", "1.00"},
		{"1.005", "1", "1.01"},
		{"19.99", "0.5", "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.rate+"x"+tt.qty, func(t *testing.T) {
			got := TransactionValue(dec(tt.rate), dec(tt.qty))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTransactionValue_Idempotent(t *testing.T) {
	first := TransactionValue(dec("3.14159"), dec("7"))
	second := TransactionValue(dec("3.14159"), dec("7"))

	if !first.Equal(second) {
		t.Errorf("expected identical results, got %s and %s", first, second)
	}
}
