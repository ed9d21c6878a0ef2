package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
)

// ProductRepository defines the product catalog operations used by the dashboard.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, productID string) (models.Product, error)
	// CreateProduct stores a new product. An empty ProductID is assigned by the store.
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductFilterer is implemented by stores that can filter on their side.
type ProductFilterer interface {
	FilterProducts(ctx context.Context, f ProductFilter) ([]models.Product, error)
}

type TransactionRepository interface {
	ListTransactionsByType(ctx context.Context, t models.TransactionType) ([]models.Transaction, error)
}

// MetricsRepository is implemented by stores that aggregate dashboard totals themselves.
type MetricsRepository interface {
	DashboardMetrics(ctx context.Context) (models.DashboardMetrics, error)
}

// SalesRepository is implemented by stores that total issue values per product themselves.
type SalesRepository interface {
	ProductSales(ctx context.Context) ([]models.ProductSale, error)
}

// Store is a complete inventory collaborator: catalog, ledger and stock.
type Store interface {
	stock.Backend
	ProductRepository
	TransactionRepository
}

// FilterProducts applies f using the store's own filter when it has one.
func FilterProducts(ctx context.Context, r ProductRepository, f ProductFilter) ([]models.Product, error) {
	if fr, ok := r.(ProductFilterer); ok {
		return fr.FilterProducts(ctx, f)
	}
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(products), nil
}
