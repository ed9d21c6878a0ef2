package stock

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

const ReorderWarning = "Warning: Stock reached the reorder level"

// ReorderCheck is the advisory result of an issue against the reorder level.
type ReorderCheck struct {
	Checked   bool            `json:"checked"`
	Projected decimal.Decimal `json:"projectedStock"`
	Warning   bool            `json:"warning"`
	Message   string          `json:"message,omitempty"`
}

// CheckReorder only looks at OUT transactions; purchases are never flagged.
func CheckReorder(p models.Product, t models.TransactionType, quantity decimal.Decimal) ReorderCheck {
	if t != models.TransactionOut {
		return ReorderCheck{Projected: p.Stock.Add(quantity)}
	}
	rc := ReorderCheck{
		Checked:   true,
		Projected: p.Stock.Sub(quantity),
	}
	if rc.Projected.LessThanOrEqual(p.ReorderLevel) {
		rc.Warning = true
		rc.Message = ReorderWarning
	}
	return rc
}
