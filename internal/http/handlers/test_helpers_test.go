package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/alerts"
	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/router"
	"github.com/rogerio-castellano/inventory-dashboard/internal/logger"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/reports"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router   http.Handler
	store    *repo.InMemoryStore
	alertLog *alerts.MemoryLog
}

func init() {
	auth.Configure("test-secret", time.Hour)
	decimal.MarshalJSONWithoutQuotes = true
}

// setup wires the handlers to a fresh in-memory store with two products:
// P1 (stock 20, reorder 5) and P2 (stock 3, reorder 5).
func setup(t *testing.T, mode stock.Mode) *testEnv {
	t.Helper()
	return setupWithBackend(t, mode, func(s *repo.InMemoryStore) stock.Backend { return s })
}

// setupWithBackend is setup with the submitter writing through backend(store).
func setupWithBackend(t *testing.T, mode stock.Mode, backend func(*repo.InMemoryStore) stock.Backend) *testEnv {
	t.Helper()
	rl.CleanupAllVisitors()
	rl.Configure(1000, 1000)

	store := repo.NewInMemoryStore(1000)
	store.AddProduct(models.Product{
		ProductID: "P1", ProductName: "Bolt", SKUID: "SKU1",
		PurchasePrice: decimal.RequireFromString("5"), SalesPrice: decimal.RequireFromString("7.5"),
		Stock: decimal.NewFromInt(20), ReorderLevel: decimal.NewFromInt(5), VendorID: "vendor1", Status: true,
	})
	store.AddProduct(models.Product{
		ProductID: "P2", ProductName: "Nut", SKUID: "SKU2",
		PurchasePrice: decimal.RequireFromString("1"), SalesPrice: decimal.RequireFromString("1.5"),
		Stock: decimal.NewFromInt(3), ReorderLevel: decimal.NewFromInt(5), VendorID: "vendor2", Status: true,
	})

	log := logger.Discard()
	alertLog := alerts.NewMemoryLog()
	allocator := stock.NewAllocator(store, 1000, time.Second, log)
	submitter := stock.NewSubmitter(backend(store), allocator, stock.NewMemoryGuard(), log, stock.Options{
		Mode:   mode,
		Now:    func() time.Time { return fixedNow },
		Alerts: alerts.NewRecorder(alertLog, nil, log),
	})

	handler.SetLogger(log)
	handler.SetProductRepo(store)
	handler.SetAllocator(allocator)
	handler.SetSubmitter(submitter)
	handler.SetReportsService(reports.NewService(store, store))

	return &testEnv{router: router.NewRouter(log), store: store, alertLog: alertLog}
}

// flakyStore fails the next stockFailures stock writes.
type flakyStore struct {
	*repo.InMemoryStore
	stockFailures int
}

func (f *flakyStore) ApplyStockDelta(ctx context.Context, productID string, quantity decimal.Decimal, t models.TransactionType) error {
	if f.stockFailures > 0 {
		f.stockFailures--
		return errors.New("connection reset by peer")
	}
	return f.InMemoryStore.ApplyStockDelta(ctx, productID, quantity, t)
}

func tokenFor(t *testing.T, role auth.Role) string {
	t.Helper()
	token, err := auth.GenerateToken(models.User{ID: "user-" + string(role), Username: string(role), Role: string(role)})
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, role auth.Role, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, role))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) submit(t *testing.T, role auth.Role, productID, direction string, req handler.TransactionRequest) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, role, http.MethodPost, fmt.Sprintf("/products/%s/transactions/%s", productID, direction), req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return v
}
