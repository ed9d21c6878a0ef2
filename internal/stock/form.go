package stock

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

const (
	FieldQuantity        = "quantity"
	FieldTransactionDate = "transactionDate"
)

// FormValue is a form input that accepts both JSON strings and JSON numbers.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	if string(b) == "null" {
		*v = ""
		return nil
	}
	*v = FormValue(b)
	return nil
}

// Form is the stock purchase/issue entry as typed by the user.
type Form struct {
	Quantity        FormValue `json:"quantity"`
	TransactionDate FormValue `json:"transactionDate"`
}

// Entry is a form that passed validation.
type Entry struct {
	Quantity decimal.Decimal
	Date     models.Date
}

// Parse runs the checks that do not need the product: presence, number
// format, sign and date.
func (f Form) Parse(now time.Time) (Entry, error) {
	entry, verr := f.parse(now)
	if len(verr.Fields) > 0 {
		return Entry{}, verr
	}
	return entry, nil
}

// Validate runs Parse plus the stock sufficiency check for issues. All
// failing fields are reported together.
func (f Form) Validate(p models.Product, t models.TransactionType, now time.Time) (Entry, error) {
	entry, verr := f.parse(now)
	if verr.Message(FieldQuantity) == "" && t == models.TransactionOut && entry.Quantity.GreaterThan(p.Stock) {
		verr.add(FieldQuantity, "Issued Quantity cannot be greater than available stock")
	}
	if len(verr.Fields) > 0 {
		return Entry{}, verr
	}
	return entry, nil
}

func (f Form) parse(now time.Time) (Entry, *ValidationError) {
	verr := &ValidationError{}
	var entry Entry

	qty := strings.TrimSpace(string(f.Quantity))
	switch q, err := decimal.NewFromString(qty); {
	case qty == "":
		verr.add(FieldQuantity, "Transaction Quantity is required")
	case err != nil:
		verr.add(FieldQuantity, "Transaction Quantity must be a number")
	case !q.IsPositive():
		verr.add(FieldQuantity, "Transaction Quantity cannot be zero or negative")
	default:
		entry.Quantity = q
	}

	date := strings.TrimSpace(string(f.TransactionDate))
	if date == "" {
		verr.add(FieldTransactionDate, "Transaction Date is required")
	} else if d, err := models.ParseDate(date, now.Location()); err != nil {
		verr.add(FieldTransactionDate, "Transaction Date is invalid")
	} else if d.After(models.NewDate(now)) {
		verr.add(FieldTransactionDate, "Transaction Date cannot be in the future")
	} else {
		entry.Date = d
	}
	return entry, verr
}
