package stock

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSubmissionInProgress = errors.New("a submission for this product is already in progress")

// ErrRetryMismatch is returned when a partially recorded transaction id is
// sent back with a different product, type or quantity.
var ErrRetryMismatch = errors.New("transaction id belongs to a different partially saved entry")

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError carries the field-level messages of a rejected form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Description
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, description string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Description: description})
}

// Message returns the description for field, or "" when the field is valid.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Description
		}
	}
	return ""
}

// WriteError is a failed remote write. Op is ledger, stock, record or compensate.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s write failed: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// PartialFailureError means exactly one of the two writes took effect and the
// ledger and the product stock now disagree.
type PartialFailureError struct {
	TransactionID int64
	LedgerWritten bool
	StockApplied  bool
	Err           error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("transaction %d partially recorded (ledger written: %t, stock applied: %t): %v",
		e.TransactionID, e.LedgerWritten, e.StockApplied, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
