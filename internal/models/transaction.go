package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// ParseTransactionType accepts IN/OUT in any case, the purchase/issue aliases
// and the numeric flags used by the dashboard routes (1 = purchase, 0 or 2 = issue).
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN", "PURCHASE", "1":
		return TransactionIn, nil
	case "OUT", "ISSUE", "0", "2":
		return TransactionOut, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

// Sign is +1 for IN and -1 for OUT.
func (t TransactionType) Sign() int {
	if t == TransactionOut {
		return -1
	}
	return 1
}

// Flag is the numeric direction the remote stock endpoint expects.
func (t TransactionType) Flag() string {
	if t == TransactionOut {
		return "2"
	}
	return "1"
}

// Transaction is an immutable ledger entry for one stock movement.
type Transaction struct {
	TransactionID    int64           `json:"transactionId"`
	TransactionType  TransactionType `json:"transactionType"`
	ProductID        string          `json:"productId"`
	Rate             decimal.Decimal `json:"rate"`
	Quantity         decimal.Decimal `json:"quantity"`
	TransactionValue decimal.Decimal `json:"transactionValue"`
	UserID           string          `json:"userId"`
	TransactionDate  Date            `json:"transactionDate"`
}

// Delta is the signed stock change this transaction applies.
func (t Transaction) Delta() decimal.Decimal {
	if t.TransactionType == TransactionOut {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

const DateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate accepts YYYY-MM-DD and full RFC3339 timestamps.
func ParseDate(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return NewDate(t.In(loc)), nil
}

// After compares calendar days only.
func (d Date) After(other Date) bool {
	return d.Format(DateLayout) > other.Format(DateLayout)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s, time.UTC)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
