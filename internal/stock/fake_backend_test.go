package stock

import (
	"context"
	"errors"
	"sync"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

var errRemoteDown = errors.New("connection refused")

type fakeBackend struct {
	mu       sync.Mutex
	products map[string]models.Product
	ledger   map[int64]models.Transaction

	nextID   int64
	allocErr error

	ledgerErr error
	stockErr  error
	removeErr error

	calls map[string]int
}

func newFakeBackend(products ...models.Product) *fakeBackend {
	b := &fakeBackend{
		products: map[string]models.Product{},
		ledger:   map[int64]models.Transaction{},
		nextID:   500,
		calls:    map[string]int{},
	}
	for _, p := range products {
		b.products[p.ProductID] = p
	}
	return b
}

func (b *fakeBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *fakeBackend) totalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *fakeBackend) AllocateTransactionID(ctx context.Context) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["allocate"]++
	if b.allocErr != nil {
		return 0, b.allocErr
	}
	b.nextID++
	return b.nextID, nil
}

func (b *fakeBackend) GetProductByID(ctx context.Context, productID string) (models.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["get"]++
	p, ok := b.products[productID]
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	return p, nil
}

func (b *fakeBackend) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["create"]++
	if b.ledgerErr != nil {
		return b.ledgerErr
	}
	if _, ok := b.ledger[tx.TransactionID]; ok {
		return models.ErrDuplicateTransaction
	}
	b.ledger[tx.TransactionID] = tx
	return nil
}

func (b *fakeBackend) RemoveTransaction(ctx context.Context, transactionID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["remove"]++
	if b.removeErr != nil {
		return b.removeErr
	}
	delete(b.ledger, transactionID)
	return nil
}

func (b *fakeBackend) ApplyStockDelta(ctx context.Context, productID string, quantity decimal.Decimal, t models.TransactionType) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["stock"]++
	if b.stockErr != nil {
		return b.stockErr
	}
	p := b.products[productID]
	if t == models.TransactionOut {
		p.Stock = p.Stock.Sub(quantity)
	} else {
		p.Stock = p.Stock.Add(quantity)
	}
	b.products[productID] = p
	return nil
}

// atomicBackend adds a versioned single-call write on top of fakeBackend.
type atomicBackend struct {
	*fakeBackend
}

func (b atomicBackend) RecordTransaction(ctx context.Context, tx models.Transaction, expectedVersion int64) (models.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["record"]++
	p := b.products[tx.ProductID]
	if expectedVersion != 0 && p.Version != expectedVersion {
		return models.Product{}, models.ErrVersionConflict
	}
	p.Stock = p.Stock.Add(tx.Delta())
	p.Version++
	b.products[tx.ProductID] = p
	b.ledger[tx.TransactionID] = tx
	return p, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
