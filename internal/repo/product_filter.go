package repo

import (
	"strings"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

type ProductFilter struct {
	Name     string
	Vendor   string
	LowStock bool
}

// Matches reports whether p passes the filter. Name and vendor are
// case-insensitive substring matches.
func (f ProductFilter) Matches(p models.Product) bool {
	if f.Name != "" && !containsFold(p.ProductName, f.Name) {
		return false
	}
	if f.Vendor != "" && !containsFold(p.VendorID, f.Vendor) {
		return false
	}
	if f.LowStock && !p.LowStock() {
		return false
	}
	return true
}

func (f ProductFilter) Apply(products []models.Product) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
