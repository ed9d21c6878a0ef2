package stock

import (
	"context"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// IDSource hands out the next transaction id.
type IDSource interface {
	AllocateTransactionID(ctx context.Context) (int64, error)
}

type ProductReader interface {
	GetProductByID(ctx context.Context, productID string) (models.Product, error)
}

// Ledger persists transaction entries. Entries are never updated.
type Ledger interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) error
	RemoveTransaction(ctx context.Context, transactionID int64) error
}

type StockWriter interface {
	ApplyStockDelta(ctx context.Context, productID string, quantity decimal.Decimal, t models.TransactionType) error
}

// Backend is everything the submission workflow needs from the store.
type Backend interface {
	IDSource
	ProductReader
	Ledger
	StockWriter
}

// AtomicRecorder is implemented by stores that can write the ledger entry and
// the stock change under one transaction boundary. expectedVersion is the
// product revision the caller read; zero skips the check.
type AtomicRecorder interface {
	RecordTransaction(ctx context.Context, tx models.Transaction, expectedVersion int64) (models.Product, error)
}
