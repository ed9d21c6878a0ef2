package handlers

import (
	"strings"

	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
)

const (
	fieldProductName   = "productName"
	fieldSKUID         = "skuId"
	fieldVendorID      = "vendorId"
	fieldPurchasePrice = "purchasePrice"
	fieldSalesPrice    = "salesPrice"
	fieldStock         = "stock"
	fieldReorderLevel  = "reorderLevel"
)

func validatePrices(req PricesRequest) []stock.FieldError {
	errs := []stock.FieldError{}
	if req.PurchasePrice == nil {
		errs = append(errs, stock.FieldError{Field: fieldPurchasePrice, Description: "Purchase price is required"})
	} else if !req.PurchasePrice.IsPositive() {
		errs = append(errs, stock.FieldError{Field: fieldPurchasePrice, Description: "Purchase price must be greater than zero"})
	}
	if req.SalesPrice == nil {
		errs = append(errs, stock.FieldError{Field: fieldSalesPrice, Description: "Sales price is required"})
	} else if !req.SalesPrice.IsPositive() {
		errs = append(errs, stock.FieldError{Field: fieldSalesPrice, Description: "Sales price must be greater than zero"})
	}
	if len(errs) == 0 && !req.SalesPrice.GreaterThan(*req.PurchasePrice) {
		errs = append(errs, stock.FieldError{Field: fieldSalesPrice, Description: "Sales price should be greater than purchase price"})
	}
	return errs
}

func validateNewProduct(req CreateProductRequest) []stock.FieldError {
	errs := []stock.FieldError{}
	if strings.TrimSpace(req.ProductName) == "" {
		errs = append(errs, stock.FieldError{Field: fieldProductName, Description: "Product Name is required"})
	}
	if strings.TrimSpace(req.SKUID) == "" {
		errs = append(errs, stock.FieldError{Field: fieldSKUID, Description: "Please select a SKU"})
	}
	if strings.TrimSpace(req.VendorID) == "" {
		errs = append(errs, stock.FieldError{Field: fieldVendorID, Description: "Please select a vendor"})
	}
	errs = append(errs, validatePrices(PricesRequest{PurchasePrice: req.PurchasePrice, SalesPrice: req.SalesPrice})...)
	if req.Stock.IsNegative() {
		errs = append(errs, stock.FieldError{Field: fieldStock, Description: "Stock cannot be negative"})
	}
	if req.ReorderLevel.IsNegative() {
		errs = append(errs, stock.FieldError{Field: fieldReorderLevel, Description: "Reorder level cannot be negative"})
	}
	return errs
}
