package stock

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision of persisted and displayed amounts.
const MoneyPlaces = 2

// RateFor picks the price snapshot for a transaction: purchase price for IN,
// sales price for OUT.
func RateFor(p models.Product, t models.TransactionType) decimal.Decimal {
	if t == models.TransactionOut {
		return p.SalesPrice
	}
	return p.PurchasePrice
}

func TransactionValue(rate, quantity decimal.Decimal) decimal.Decimal {
	return rate.Mul(quantity).Round(MoneyPlaces)
}
