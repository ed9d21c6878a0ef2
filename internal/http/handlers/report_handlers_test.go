package handlers_test

import (
	"net/http"
	"testing"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

func TestDashboardMetricsHandler(t *testing.T) {
	env := setup(t, "")

	for range 3 {
		w := env.submit(t, auth.RoleVendor, "P2", "in", handler.TransactionRequest{Quantity: "1", TransactionDate: "2025-07-01"})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to record purchase: %d", w.Code)
		}
	}
	env.submit(t, auth.RoleVendor, "P1", "out", handler.TransactionRequest{Quantity: "2", TransactionDate: "2025-07-01"})

	if w := env.do(t, auth.RoleManager, http.MethodGet, "/reports/dashboard", nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for manager, got %d", w.Code)
	}

	w := env.do(t, auth.RoleAdmin, http.MethodGet, "/reports/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	m := decode[models.DashboardMetrics](t, w)

	if m.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", m.TotalProducts)
	}
	if m.LowStockCount != 0 {
		t.Errorf("expected no low stock after purchases, got %d", m.LowStockCount)
	}
	if m.InCount != 3 || !m.InValue.Equal(decimal.NewFromInt(3)) {
		t.Errorf("unexpected IN totals %d / %s", m.InCount, m.InValue)
	}
	if m.OutCount != 1 || !m.OutValue.Equal(decimal.NewFromInt(15)) {
		t.Errorf("unexpected OUT totals %d / %s", m.OutCount, m.OutValue)
	}
	if m.MostMovedProduct == nil || m.MostMovedProduct.Name != "Nut" || m.MostMovedProduct.TransactionCount != 3 {
		t.Errorf("unexpected most moved product %+v", m.MostMovedProduct)
	}
}

func TestProductSalesHandler(t *testing.T) {
	env := setup(t, "")
	env.submit(t, auth.RoleVendor, "P1", "out", handler.TransactionRequest{Quantity: "2", TransactionDate: "2025-07-01"})
	env.submit(t, auth.RoleVendor, "P2", "out", handler.TransactionRequest{Quantity: "1", TransactionDate: "2025-07-01"})
	env.submit(t, auth.RoleVendor, "P1", "in", handler.TransactionRequest{Quantity: "4", TransactionDate: "2025-07-01"})

	if w := env.do(t, auth.RoleVendor, http.MethodGet, "/reports/product-sales", nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for vendor, got %d", w.Code)
	}

	w := env.do(t, auth.RoleAdmin, http.MethodGet, "/reports/product-sales", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	sales := decode[[]models.ProductSale](t, w)
	if len(sales) != 2 {
		t.Fatalf("expected 2 products, got %+v", sales)
	}
	if sales[0].ProductName != "Bolt" || !sales[0].TotalSaleValue.Equal(decimal.NewFromInt(15)) {
		t.Errorf("unexpected first entry %+v", sales[0])
	}
	if sales[1].ProductName != "Nut" || !sales[1].TotalSaleValue.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("unexpected second entry %+v", sales[1])
	}
}

func TestMenuHandler(t *testing.T) {
	env := setup(t, "")

	w := env.do(t, auth.RoleVendor, http.MethodGet, "/menu", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp := decode[handler.MenuResponse](t, w)
	if resp.User.Role != string(auth.RoleVendor) {
		t.Errorf("expected vendor role, got %q", resp.User.Role)
	}
	for _, c := range resp.Capabilities {
		if c == auth.CapTransactionsView || c == auth.CapProductDelete {
			t.Errorf("vendor must not have %s", c)
		}
	}
	for _, s := range resp.Sections {
		if s.Title == "Transactions" {
			t.Error("vendor must not see the transactions section")
		}
	}
}

func TestHealthHandler(t *testing.T) {
	env := setup(t, "")
	if w := env.do(t, "", http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", w.Code)
	}
}
