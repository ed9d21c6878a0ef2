package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// InMemoryStore is an in-memory implementation of Store. It also implements
// stock.AtomicRecorder.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string
	ledger   map[int64]models.Transaction
	nextID   int64
	productN int64
}

// NewInMemoryStore creates an empty store whose id sequence starts at firstID.
func NewInMemoryStore(firstID int64) *InMemoryStore {
	if firstID <= 0 {
		firstID = 1
	}
	return &InMemoryStore{
		products: make(map[string]models.Product),
		ledger:   make(map[int64]models.Transaction),
		nextID:   firstID,
	}
}

// AddProduct inserts or replaces a product.
func (s *InMemoryStore) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ProductID]; !exists {
		s.order = append(s.order, p.ProductID)
	}
	if p.Version == 0 {
		p.Version = 1
	}
	s.products[p.ProductID] = p
	return p
}

// CreateProduct inserts a new product with version 1. An empty ProductID is
// generated.
func (s *InMemoryStore) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ProductID == "" {
		for {
			s.productN++
			p.ProductID = fmt.Sprintf("PRD%05d", s.productN)
			if _, taken := s.products[p.ProductID]; !taken {
				break
			}
		}
	}
	if _, exists := s.products[p.ProductID]; exists {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrDuplicateProduct, p.ProductID)
	}
	p.Version = 1
	s.products[p.ProductID] = p
	s.order = append(s.order, p.ProductID)
	return p, nil
}

func (s *InMemoryStore) AllocateTransactionID(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	return id, nil
}

func (s *InMemoryStore) GetProductByID(_ context.Context, productID string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	return p, nil
}

func (s *InMemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.products[id])
	}
	return products, nil
}

// UpdateProduct replaces the catalog fields of a product. Stock is owned by
// the ledger and is kept.
func (s *InMemoryStore) UpdateProduct(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[p.ProductID]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, p.ProductID)
	}
	if p.Version != 0 && p.Version != current.Version {
		return models.Product{}, models.ErrVersionConflict
	}
	p.Stock = current.Stock
	p.Version = current.Version + 1
	s.products[p.ProductID] = p
	return p, nil
}

func (s *InMemoryStore) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	delete(s.products, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) CreateTransaction(_ context.Context, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(tx)
}

func (s *InMemoryStore) RemoveTransaction(_ context.Context, transactionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger[transactionID]; !ok {
		return fmt.Errorf("%w: %d", models.ErrTransactionNotFound, transactionID)
	}
	delete(s.ledger, transactionID)
	return nil
}

func (s *InMemoryStore) ApplyStockDelta(_ context.Context, productID string, quantity decimal.Decimal, t models.TransactionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.adjustLocked(productID, quantity.Mul(decimal.NewFromInt(int64(t.Sign()))))
	return err
}

// RecordTransaction writes the ledger entry and the stock change together.
// Nothing is written when any check fails.
func (s *InMemoryStore) RecordTransaction(_ context.Context, tx models.Transaction, expectedVersion int64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[tx.ProductID]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, tx.ProductID)
	}
	if expectedVersion != 0 && p.Version != expectedVersion {
		return models.Product{}, models.ErrVersionConflict
	}
	if _, dup := s.ledger[tx.TransactionID]; dup {
		return models.Product{}, fmt.Errorf("%w: %d", models.ErrDuplicateTransaction, tx.TransactionID)
	}
	if p.Stock.Add(tx.Delta()).IsNegative() {
		return models.Product{}, models.ErrInsufficientStock
	}

	updated, err := s.adjustLocked(tx.ProductID, tx.Delta())
	if err != nil {
		return models.Product{}, err
	}
	if err := s.insertLocked(tx); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

func (s *InMemoryStore) ListTransactionsByType(_ context.Context, t models.TransactionType) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []models.Transaction
	for _, tx := range s.ledger {
		if tx.TransactionType == t {
			txs = append(txs, tx)
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].TransactionID < txs[j].TransactionID })
	return txs, nil
}

func (s *InMemoryStore) insertLocked(tx models.Transaction) error {
	if _, dup := s.ledger[tx.TransactionID]; dup {
		return fmt.Errorf("%w: %d", models.ErrDuplicateTransaction, tx.TransactionID)
	}
	s.ledger[tx.TransactionID] = tx
	if tx.TransactionID >= s.nextID {
		s.nextID = tx.TransactionID + 1
	}
	return nil
}

func (s *InMemoryStore) adjustLocked(productID string, delta decimal.Decimal) (models.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return models.Product{}, models.ErrInsufficientStock
	}
	p.Stock = next
	p.Version++
	s.products[productID] = p
	return p, nil
}
