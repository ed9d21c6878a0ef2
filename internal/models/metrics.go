package models

import "github.com/shopspring/decimal"

type MostMovedProduct struct {
	ProductID        string `json:"productId"`
	Name             string `json:"name"`
	TransactionCount int    `json:"transactionCount"`
}

// DashboardMetrics are the totals shown on the dashboard landing page.
type DashboardMetrics struct {
	TotalProducts    int               `json:"totalProducts"`
	LowStockCount    int               `json:"lowStockCount"`
	InCount          int               `json:"inCount"`
	InValue          decimal.Decimal   `json:"inValue"`
	OutCount         int               `json:"outCount"`
	OutValue         decimal.Decimal   `json:"outValue"`
	MostMovedProduct *MostMovedProduct `json:"mostMovedProduct,omitempty"`
}

// ProductSale is the total value issued (OUT) for one product.
type ProductSale struct {
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	TotalSaleValue decimal.Decimal `json:"totalSaleValue"`
}
