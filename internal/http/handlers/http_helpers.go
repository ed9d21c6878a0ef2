package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/remote"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// writeError maps workflow and store errors to a status and a visible message.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr    *stock.ValidationError
		partial *stock.PartialFailureError
		werr    *stock.WriteError
		apiErr  *remote.APIError
	)

	switch {
	case errors.As(err, &verr):
		_ = writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: verr.Fields})
	case errors.As(err, &partial):
		_ = writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:         "Transaction partially saved: " + err.Error(),
			Partial:       true,
			TransactionID: partial.TransactionID,
			LedgerWritten: partial.LedgerWritten,
			StockApplied:  partial.StockApplied,
		})
	case errors.As(err, &werr):
		_ = writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Transaction not saved: " + err.Error()})
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrTransactionNotFound):
		_ = writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, stock.ErrSubmissionInProgress), errors.Is(err, stock.ErrRetryMismatch):
		_ = writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrVersionConflict):
		_ = writeJSON(w, http.StatusConflict, ErrorResponse{Error: "product changed since it was loaded, refresh and retry"})
	case errors.Is(err, models.ErrInsufficientStock), errors.Is(err, models.ErrDuplicateTransaction),
		errors.Is(err, models.ErrDuplicateProduct):
		_ = writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &apiErr):
		_ = writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		log.WithError(err).Error("unexpected error")
		_ = writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
