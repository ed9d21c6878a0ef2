package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

func (r *PostgresStore) DashboardMetrics(ctx context.Context) (models.DashboardMetrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m models.DashboardMetrics

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts); err != nil {
		return m, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE stock <= reorder_level`).Scan(&m.LowStockCount); err != nil {
		return m, err
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE transaction_type = 'IN'),
			COALESCE(SUM(transaction_value) FILTER (WHERE transaction_type = 'IN'), 0),
			COUNT(*) FILTER (WHERE transaction_type = 'OUT'),
			COALESCE(SUM(transaction_value) FILTER (WHERE transaction_type = 'OUT'), 0)
		FROM transactions
	`).Scan(&m.InCount, &m.InValue, &m.OutCount, &m.OutValue)
	if err != nil {
		return m, err
	}

	var most models.MostMovedProduct
	err = r.db.QueryRowContext(ctx, `
		SELECT p.product_id, p.product_name, COUNT(*) AS cnt
		FROM transactions t
		JOIN products p ON t.product_id = p.product_id
		GROUP BY p.product_id, p.product_name
		ORDER BY cnt DESC, p.product_id
		LIMIT 1
	`).Scan(&most.ProductID, &most.Name, &most.TransactionCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return m, err
	default:
		m.MostMovedProduct = &most
	}

	return m, nil
}

// ProductSales totals the OUT ledger per product, largest first. Entries of
// deleted products are listed under their id.
func (r *PostgresStore) ProductSales(ctx context.Context) ([]models.ProductSale, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.product_id, COALESCE(MAX(p.product_name), t.product_id), SUM(t.transaction_value) AS total
		FROM transactions t
		LEFT JOIN products p ON t.product_id = p.product_id
		WHERE t.transaction_type = 'OUT'
		GROUP BY t.product_id
		ORDER BY total DESC, t.product_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.ProductSale{}
	for rows.Next() {
		var s models.ProductSale
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.TotalSaleValue); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
