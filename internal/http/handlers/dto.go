package handlers

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	models.Product
	LowStock bool `json:"lowStock"`
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.LowStock()}
}

type Meta struct {
	TotalCount int `json:"totalCount"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type PricesRequest struct {
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SalesPrice    *decimal.Decimal `json:"salesPrice"`
}

// CreateProductRequest is the product entry form. The product id is assigned
// by the store.
type CreateProductRequest struct {
	ProductName   string           `json:"productName"`
	SKUID         string           `json:"skuId"`
	VendorID      string           `json:"vendorId"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SalesPrice    *decimal.Decimal `json:"salesPrice"`
	Stock         decimal.Decimal  `json:"stock"`
	ReorderLevel  decimal.Decimal  `json:"reorderLevel"`
	Status        *bool            `json:"status,omitempty"`
}

// TransactionRequest is the stock entry form. TransactionID is the id shown
// on the form; send it back unchanged when retrying a failed save.
type TransactionRequest struct {
	TransactionID   int64           `json:"transactionId,omitempty"`
	Quantity        stock.FormValue `json:"quantity"`
	TransactionDate stock.FormValue `json:"transactionDate"`
}

type NextIDResponse struct {
	TransactionID int64 `json:"transactionId"`
}

type TransactionsSearchResult struct {
	Data []models.Transaction `json:"data"`
	Meta Meta                 `json:"meta"`
}

type MenuResponse struct {
	User         models.User        `json:"user"`
	Capabilities []auth.Capability  `json:"capabilities"`
	Sections     []auth.MenuSection `json:"sections"`
}

type ValidationErrorResponse struct {
	Errors []stock.FieldError `json:"errors"`
}

type ErrorResponse struct {
	Error         string `json:"error"`
	Partial       bool   `json:"partial,omitempty"`
	TransactionID int64  `json:"transactionId,omitempty"`
	LedgerWritten bool   `json:"ledgerWritten,omitempty"`
	StockApplied  bool   `json:"stockApplied,omitempty"`
}
