package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TransactionFilter narrows a type-scoped transaction listing. Empty fields
// do not filter.
type TransactionFilter struct {
	Type models.TransactionType
	// User is a case-insensitive substring of the user id.
	User string
	// Rate matches when it is a substring of the rate as written, so "7.5"
	// finds 7.5 and 17.5.
	Rate string
	Date *models.Date
}

func (f TransactionFilter) Matches(tx models.Transaction) bool {
	if f.User != "" && !strings.Contains(strings.ToLower(tx.UserID), strings.ToLower(f.User)) {
		return false
	}
	if f.Rate != "" && !strings.Contains(tx.Rate.String(), f.Rate) {
		return false
	}
	if f.Date != nil && tx.TransactionDate.String() != f.Date.String() {
		return false
	}
	return true
}

type Service struct {
	products     repo.ProductRepository
	transactions repo.TransactionRepository
}

func NewService(products repo.ProductRepository, transactions repo.TransactionRepository) *Service {
	return &Service{products: products, transactions: transactions}
}

// Transactions lists the ledger entries of one type that match f.
func (s *Service) Transactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	if !f.Type.Valid() {
		return nil, fmt.Errorf("invalid transaction type %q", f.Type)
	}
	txs, err := s.transactions.ListTransactionsByType(ctx, f.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s transactions: %w", f.Type, err)
	}

	filtered := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

// Dashboard returns the landing page totals. Stores that aggregate on their
// side answer directly; otherwise the totals are computed from the catalog
// and both ledgers.
func (s *Service) Dashboard(ctx context.Context) (models.DashboardMetrics, error) {
	if mr, ok := s.products.(repo.MetricsRepository); ok {
		return mr.DashboardMetrics(ctx)
	}

	var (
		products []models.Product
		ins      []models.Transaction
		outs     []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		ins, err = s.transactions.ListTransactionsByType(gctx, models.TransactionIn)
		return err
	})
	g.Go(func() (err error) {
		outs, err = s.transactions.ListTransactionsByType(gctx, models.TransactionOut)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	return Summarize(products, ins, outs), nil
}

// ProductSales returns the issued value per product for the analysis chart.
func (s *Service) ProductSales(ctx context.Context) ([]models.ProductSale, error) {
	if sr, ok := s.products.(repo.SalesRepository); ok {
		return sr.ProductSales(ctx)
	}

	var (
		products []models.Product
		outs     []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		outs, err = s.transactions.ListTransactionsByType(gctx, models.TransactionOut)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load sales data: %w", err)
	}

	return SalesByProduct(products, outs), nil
}

// SalesByProduct totals the OUT entries per product, largest first, ties by
// product id. Products no longer in the catalog are named by their id.
func SalesByProduct(products []models.Product, outs []models.Transaction) []models.ProductSale {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ProductID] = p.ProductName
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range outs {
		totals[tx.ProductID] = totals[tx.ProductID].Add(tx.TransactionValue)
	}

	sales := make([]models.ProductSale, 0, len(totals))
	for id, total := range totals {
		name, ok := names[id]
		if !ok {
			name = id
		}
		sales = append(sales, models.ProductSale{ProductID: id, ProductName: name, TotalSaleValue: total})
	}
	sort.Slice(sales, func(i, j int) bool {
		if c := sales[i].TotalSaleValue.Cmp(sales[j].TotalSaleValue); c != 0 {
			return c > 0
		}
		return sales[i].ProductID < sales[j].ProductID
	})
	return sales
}

// Summarize computes the dashboard totals from raw data.
func Summarize(products []models.Product, ins, outs []models.Transaction) models.DashboardMetrics {
	m := models.DashboardMetrics{
		TotalProducts: len(products),
		InCount:       len(ins),
		OutCount:      len(outs),
		InValue:       decimal.Zero,
		OutValue:      decimal.Zero,
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ProductID] = p.ProductName
		if p.LowStock() {
			m.LowStockCount++
		}
	}

	counts := make(map[string]int)
	for _, tx := range ins {
		m.InValue = m.InValue.Add(tx.TransactionValue)
		counts[tx.ProductID]++
	}
	for _, tx := range outs {
		m.OutValue = m.OutValue.Add(tx.TransactionValue)
		counts[tx.ProductID]++
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if m.MostMovedProduct == nil || counts[id] > m.MostMovedProduct.TransactionCount {
			m.MostMovedProduct = &models.MostMovedProduct{
				ProductID:        id,
				Name:             names[id],
				TransactionCount: counts[id],
			}
		}
	}
	return m
}
