package auth

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleVendor  Role = "Vendor"
)

// ParseRole is case-insensitive. Unknown roles are an error.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "manager":
		return RoleManager, nil
	case "vendor":
		return RoleVendor, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Capability string

const (
	CapSKUManage        Capability = "sku.manage"
	CapSKUView          Capability = "sku.view"
	CapProductCreate    Capability = "product.create"
	CapProductView      Capability = "product.view"
	CapProductPriceEdit Capability = "product.price.edit"
	CapProductDelete    Capability = "product.delete"
	CapProductAnalysis  Capability = "product.analysis"
	CapStockPurchase    Capability = "stock.purchase"
	CapStockIssue       Capability = "stock.issue"
	CapTransactionsView Capability = "transactions.view"
)

var capabilities = map[Role][]Capability{
	RoleAdmin: {
		CapSKUManage, CapSKUView,
		CapProductCreate, CapProductView, CapProductPriceEdit, CapProductDelete, CapProductAnalysis,
		CapStockPurchase, CapStockIssue,
		CapTransactionsView,
	},
	RoleManager: {
		CapSKUManage, CapSKUView,
		CapProductCreate, CapProductView, CapProductPriceEdit,
		CapStockPurchase, CapStockIssue,
	},
	RoleVendor: {
		CapSKUView,
		CapProductCreate, CapProductView, CapProductPriceEdit,
		CapStockPurchase, CapStockIssue,
	},
}

func (r Role) Can(c Capability) bool {
	for _, have := range capabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

func (r Role) Capabilities() []Capability {
	return append([]Capability(nil), capabilities[r]...)
}

// MenuSection is one navigation group of the dashboard.
type MenuSection struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

type MenuItem struct {
	Label      string     `json:"label"`
	Path       string     `json:"path"`
	Capability Capability `json:"capability"`
}

var menu = []MenuSection{
	{Title: "SKU", Items: []MenuItem{
		{Label: "SKU Addition", Path: "/sku/add", Capability: CapSKUManage},
		{Label: "SKU Report", Path: "/sku/report", Capability: CapSKUView},
	}},
	{Title: "Product", Items: []MenuItem{
		{Label: "Product Addition", Path: "/product/add", Capability: CapProductCreate},
		{Label: "Product Report", Path: "/product/report", Capability: CapProductView},
		{Label: "Product Analysis", Path: "/product/analysis", Capability: CapProductAnalysis},
	}},
	{Title: "Stock", Items: []MenuItem{
		{Label: "Stock Purchase", Path: "/stock/purchase", Capability: CapStockPurchase},
		{Label: "Stock Issue", Path: "/stock/issue", Capability: CapStockIssue},
	}},
	{Title: "Transactions", Items: []MenuItem{
		{Label: "Purchase Report", Path: "/transactions/in", Capability: CapTransactionsView},
		{Label: "Issue Report", Path: "/transactions/out", Capability: CapTransactionsView},
	}},
}

// Menu returns the navigation entries r may use. Sections with no usable
// entry are left out.
func Menu(r Role) []MenuSection {
	var sections []MenuSection
	for _, section := range menu {
		var items []MenuItem
		for _, item := range section.Items {
			if r.Can(item.Capability) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			sections = append(sections, MenuSection{Title: section.Title, Items: items})
		}
	}
	return sections
}
