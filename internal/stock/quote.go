package stock

import (
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Quote is what the entry form shows while the user types: the derived value
// and the reorder advisory, without any write.
type Quote struct {
	TransactionType models.TransactionType `json:"transactionType"`
	Rate            decimal.Decimal        `json:"rate"`
	Quantity        decimal.Decimal        `json:"quantity"`
	Value           decimal.Decimal        `json:"transactionValue"`
	Reorder         ReorderCheck           `json:"reorder"`
}

func NewQuote(p models.Product, t models.TransactionType, f Form, now time.Time) (Quote, Entry, error) {
	entry, err := f.Validate(p, t, now)
	if err != nil {
		return Quote{}, Entry{}, err
	}
	rate := RateFor(p, t)
	return Quote{
		TransactionType: t,
		Rate:            rate,
		Quantity:        entry.Quantity,
		Value:           TransactionValue(rate, entry.Quantity),
		Reorder:         CheckReorder(p, t, entry.Quantity),
	}, entry, nil
}
