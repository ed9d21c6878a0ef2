package repo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

func seededStore() *InMemoryStore {
	s := NewInMemoryStore(1000)
	s.AddProduct(models.Product{
		ProductID:     "P1",
		ProductName:   "Bolt",
		PurchasePrice: decimal.RequireFromString("5"),
		SalesPrice:    decimal.RequireFromString("7.5"),
		Stock:         decimal.NewFromInt(20),
		ReorderLevel:  decimal.NewFromInt(5),
		VendorID:      "vendor1",
		Status:        true,
	})
	s.AddProduct(models.Product{
		ProductID:    "P2",
		ProductName:  "Nut",
		Stock:        decimal.NewFromInt(3),
		ReorderLevel: decimal.NewFromInt(5),
		VendorID:     "vendor2",
	})
	return s
}

func newTx(id int64, t models.TransactionType, productID string, qty int64) models.Transaction {
	return models.Transaction{
		TransactionID:   id,
		TransactionType: t,
		ProductID:       productID,
		Rate:            decimal.RequireFromString("5"),
		Quantity:        decimal.NewFromInt(qty),
		UserID:          "vendor1",
		TransactionDate: models.NewDate(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestInMemoryStore_AllocateTransactionID(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	first, _ := s.AllocateTransactionID(ctx)
	second, _ := s.AllocateTransactionID(ctx)
	if first != 1000 || second != 1001 {
		t.Errorf("expected 1000 and 1001, got %d and %d", first, second)
	}

	if err := s.CreateTransaction(ctx, newTx(2000, models.TransactionIn, "P1", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, _ := s.AllocateTransactionID(ctx)
	if next != 2001 {
		t.Errorf("expected allocation to continue after 2000, got %d", next)
	}
}

func TestInMemoryStore_ApplyStockDelta(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	if err := s.ApplyStockDelta(ctx, "P1", decimal.NewFromInt(10), models.TransactionIn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ApplyStockDelta(ctx, "P1", decimal.NewFromInt(4), models.TransactionOut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := s.GetProductByID(ctx, "P1")
	if !p.Stock.Equal(decimal.NewFromInt(26)) {
		t.Errorf("expected stock 26, got %s", p.Stock)
	}
	if p.Version != 3 {
		t.Errorf("expected version 3, got %d", p.Version)
	}

	err := s.ApplyStockDelta(ctx, "P2", decimal.NewFromInt(4), models.TransactionOut)
	if !errors.Is(err, models.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	err = s.ApplyStockDelta(ctx, "missing", decimal.NewFromInt(1), models.TransactionIn)
	if !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestInMemoryStore_Ledger(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	if err := s.CreateTransaction(ctx, newTx(1, models.TransactionIn, "P1", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CreateTransaction(ctx, newTx(2, models.TransactionOut, "P1", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CreateTransaction(ctx, newTx(1, models.TransactionIn, "P1", 2)); !errors.Is(err, models.ErrDuplicateTransaction) {
		t.Errorf("expected ErrDuplicateTransaction, got %v", err)
	}

	ins, _ := s.ListTransactionsByType(ctx, models.TransactionIn)
	outs, _ := s.ListTransactionsByType(ctx, models.TransactionOut)
	if len(ins) != 1 || len(outs) != 1 {
		t.Fatalf("expected one IN and one OUT, got %d and %d", len(ins), len(outs))
	}

	if err := s.RemoveTransaction(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RemoveTransaction(ctx, 1); !errors.Is(err, models.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestInMemoryStore_RecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("writes both sides", func(t *testing.T) {
		s := seededStore()
		p, err := s.RecordTransaction(ctx, newTx(1, models.TransactionOut, "P1", 5), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Stock.Equal(decimal.NewFromInt(15)) || p.Version != 2 {
			t.Errorf("unexpected product %+v", p)
		}
		outs, _ := s.ListTransactionsByType(ctx, models.TransactionOut)
		if len(outs) != 1 {
			t.Errorf("expected ledger entry, got %d", len(outs))
		}
	})

	t.Run("version conflict writes nothing", func(t *testing.T) {
		s := seededStore()
		_, err := s.RecordTransaction(ctx, newTx(1, models.TransactionIn, "P1", 5), 7)
		if !errors.Is(err, models.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
		p, _ := s.GetProductByID(ctx, "P1")
		ins, _ := s.ListTransactionsByType(ctx, models.TransactionIn)
		if !p.Stock.Equal(decimal.NewFromInt(20)) || len(ins) != 0 {
			t.Errorf("expected no writes, got stock %s and %d entries", p.Stock, len(ins))
		}
	})

	t.Run("insufficient stock writes nothing", func(t *testing.T) {
		s := seededStore()
		_, err := s.RecordTransaction(ctx, newTx(1, models.TransactionOut, "P2", 4), 0)
		if !errors.Is(err, models.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		outs, _ := s.ListTransactionsByType(ctx, models.TransactionOut)
		if len(outs) != 0 {
			t.Errorf("expected no ledger entry, got %d", len(outs))
		}
	})

	t.Run("duplicate id writes nothing", func(t *testing.T) {
		s := seededStore()
		_ = s.CreateTransaction(ctx, newTx(1, models.TransactionIn, "P1", 1))
		_, err := s.RecordTransaction(ctx, newTx(1, models.TransactionIn, "P1", 5), 0)
		if !errors.Is(err, models.ErrDuplicateTransaction) {
			t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
		}
		p, _ := s.GetProductByID(ctx, "P1")
		if !p.Stock.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected stock unchanged, got %s", p.Stock)
		}
	})
}

func TestInMemoryStore_ConcurrentIssuesNeverGoNegative(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 30 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = s.RecordTransaction(ctx, newTx(id, models.TransactionOut, "P1", 1), 0)
		}(int64(i + 1))
	}
	wg.Wait()

	p, _ := s.GetProductByID(ctx, "P1")
	outs, _ := s.ListTransactionsByType(ctx, models.TransactionOut)
	if !p.Stock.IsZero() {
		t.Errorf("expected stock 0, got %s", p.Stock)
	}
	if len(outs) != 20 {
		t.Errorf("expected 20 recorded issues, got %d", len(outs))
	}
}

func TestInMemoryStore_UpdateAndDeleteProduct(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	p, _ := s.GetProductByID(ctx, "P1")
	p.SalesPrice = decimal.RequireFromString("9")
	p.Stock = decimal.NewFromInt(999)

	updated, err := s.UpdateProduct(ctx, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.SalesPrice.Equal(decimal.RequireFromString("9")) {
		t.Errorf("expected sales price 9, got %s", updated.SalesPrice)
	}
	if !updated.Stock.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected stock to be kept at 20, got %s", updated.Stock)
	}

	if _, err := s.UpdateProduct(ctx, p); !errors.Is(err, models.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict on stale update, got %v", err)
	}

	if err := s.DeleteProduct(ctx, "P1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteProduct(ctx, "P1"); !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	products, _ := s.ListProducts(ctx)
	if len(products) != 1 || products[0].ProductID != "P2" {
		t.Errorf("unexpected products %+v", products)
	}
}

func TestFilterProducts(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"no filter", ProductFilter{}, []string{"P1", "P2"}},
		{"name", ProductFilter{Name: "bol"}, []string{"P1"}},
		{"vendor", ProductFilter{Vendor: "VENDOR2"}, []string{"P2"}},
		{"low stock", ProductFilter{LowStock: true}, []string{"P2"}},
		{"no match", ProductFilter{Name: "screw"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterProducts(ctx, s, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %+v", tt.want, got)
			}
			for i, id := range tt.want {
				if got[i].ProductID != id {
					t.Errorf("expected %s at %d, got %s", id, i, got[i].ProductID)
				}
			}
		})
	}
}

func TestInMemoryStore_CreateProduct(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, models.Product{ProductName: "Washer", SKUID: "SKU3", VendorID: "vendor1", Stock: decimal.NewFromInt(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ProductID != "PRD00001" || p.Version != 1 {
		t.Errorf("unexpected product %+v", p)
	}

	next, _ := s.CreateProduct(ctx, models.Product{ProductName: "Screw"})
	if next.ProductID != "PRD00002" {
		t.Errorf("expected PRD00002, got %s", next.ProductID)
	}

	if _, err := s.CreateProduct(ctx, models.Product{ProductID: "P1", ProductName: "Again"}); !errors.Is(err, models.ErrDuplicateProduct) {
		t.Errorf("expected ErrDuplicateProduct, got %v", err)
	}

	products, _ := s.ListProducts(ctx)
	if len(products) != 4 || products[2].ProductID != "PRD00001" {
		t.Errorf("expected created products listed after the seeded ones, got %+v", products)
	}
}
