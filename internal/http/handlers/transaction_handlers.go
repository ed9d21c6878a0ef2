package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/reports"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
)

// directionFromRequest parses the {direction} path segment and checks the
// caller may record that kind of transaction.
func directionFromRequest(w http.ResponseWriter, r *http.Request) (models.TransactionType, bool) {
	t, err := models.ParseTransactionType(chi.URLParam(r, "direction"))
	if err != nil {
		http.Error(w, "invalid transaction direction", http.StatusBadRequest)
		return "", false
	}

	capability := auth.CapStockPurchase
	if t == models.TransactionOut {
		capability = auth.CapStockIssue
	}
	role, ok := middleware.GetRole(r)
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return "", false
	}
	if !role.Can(capability) {
		http.Error(w, "forbidden: requires "+string(capability), http.StatusForbidden)
		return "", false
	}
	return t, true
}

// NextTransactionIDHandler godoc
// @Summary Next transaction id
// @Description Id to show on a fresh stock entry form. Never fails: a local id is used when the generator is unreachable.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NextIDResponse
// @Router /transactions/next-id [get]
func NextTransactionIDHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, NextIDResponse{TransactionID: allocator.Next(r.Context())})
}

// PreviewTransactionHandler godoc
// @Summary Preview a stock transaction
// @Description Validates the form and returns rate, value and reorder warning without saving
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param direction path string true "in (purchase) or out (issue)"
// @Param form body TransactionRequest true "Stock entry form"
// @Success 200 {object} stock.Quote
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /products/{id}/transactions/{direction}/preview [post]
func PreviewTransactionHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := directionFromRequest(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	form := stock.Form{Quantity: req.Quantity, TransactionDate: req.TransactionDate}
	quote, err := submitter.Quote(r.Context(), chi.URLParam(r, "id"), t, form)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, quote)
}

// SubmitTransactionHandler godoc
// @Summary Save a stock transaction
// @Description Records a purchase (in) or issue (out): ledger entry plus stock change
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param direction path string true "in (purchase) or out (issue)"
// @Param form body TransactionRequest true "Stock entry form"
// @Success 201 {object} stock.Receipt
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Submission in progress or product changed"
// @Failure 422 {object} ValidationErrorResponse
// @Failure 502 {object} ErrorResponse "Write failed, possibly partially"
// @Router /products/{id}/transactions/{direction} [post]
func SubmitTransactionHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := directionFromRequest(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, _ := middleware.GetUser(r)
	receipt, err := submitter.Submit(r.Context(), stock.Submission{
		ProductID:       chi.URLParam(r, "id"),
		TransactionType: t,
		Form:            stock.Form{Quantity: req.Quantity, TransactionDate: req.TransactionDate},
		TransactionID:   req.TransactionID,
		UserID:          user.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, receipt)
}

// GetTransactionsHandler godoc
// @Summary List transactions by type
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param type query string true "IN or OUT"
// @Param user query string false "User id contains"
// @Param rate query string false "Rate contains"
// @Param date query string false "Transaction date (YYYY-MM-DD)"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Failure 502 {object} ErrorResponse
// @Router /transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	t, err := models.ParseTransactionType(q.Get("type"))
	if err != nil {
		http.Error(w, "invalid or missing transaction type", http.StatusBadRequest)
		return
	}
	filter := reports.TransactionFilter{Type: t, User: q.Get("user"), Rate: q.Get("rate")}

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := models.ParseDate(dateStr, time.Local)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		filter.Date = &date
	}

	txs, err := reportsService.Transactions(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, TransactionsSearchResult{Data: txs, Meta: Meta{TotalCount: len(txs)}})
}
