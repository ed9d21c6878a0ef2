package models

import "github.com/shopspring/decimal"

// Product represents a product entity in the inventory system.
type Product struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	SKUID         string          `json:"skuId"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalesPrice    decimal.Decimal `json:"salesPrice"`
	Stock         decimal.Decimal `json:"stock"`
	ReorderLevel  decimal.Decimal `json:"reorderLevel"`
	VendorID      string          `json:"vendorId"`
	Status        bool            `json:"status"`
	// Version is the revision token for optimistic concurrency; zero when the
	// backing store does not track revisions.
	Version int64 `json:"version,omitempty"`
}

// LowStock reports whether the stock is at or below the reorder level.
func (p Product) LowStock() bool {
	return p.Stock.LessThanOrEqual(p.ReorderLevel)
}
