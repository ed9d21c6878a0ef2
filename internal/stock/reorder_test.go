package stock

import (
	"testing"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

func TestCheckReorder(t *testing.T) {
	p := models.Product{Stock: dec("100"), ReorderLevel: dec("20")}

	tests := []struct {
		name          string
		txType        models.TransactionType
		qty           string
		wantChecked   bool
		wantWarning   bool
		wantProjected string
	}{
		{"issue above level", models.TransactionOut, "50", true, false, "50"},
		{"issue lands on level", models.TransactionOut, "80", true, true, "20"},
		{"issue below level", models.TransactionOut, "85", true, true, "15"},
		{"purchase never warns", models.TransactionIn, "1", false, false, "101"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := CheckReorder(p, tt.txType, dec(tt.qty))
			if rc.Checked != tt.wantChecked {
				t.Errorf("expected checked=%v, got %v", tt.wantChecked, rc.Checked)
			}
			if rc.Warning != tt.wantWarning {
				t.Errorf("expected warning=%v, got %v", tt.wantWarning, rc.Warning)
			}
			if !rc.Projected.Equal(dec(tt.wantProjected)) {
				t.Errorf("expected projected %s, got %s", tt.wantProjected, rc.Projected)
			}
		})
	}
}

func TestCheckReorder_PurchaseBelowLevel(t *testing.T) {
	p := models.Product{Stock: dec("1"), ReorderLevel: dec("20")}

	if rc := CheckReorder(p, models.TransactionIn, dec("2")); rc.Warning {
		t.Error("purchases must never raise a reorder warning")
	}
}
