package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

const queryTimeout = 3 * time.Second

const productColumns = `product_id, product_name, sku_id, purchase_price, sales_price, stock, reorder_level, vendor_id, status, version`

const transactionColumns = `transaction_id, transaction_type, product_id, rate, quantity, transaction_value, user_id, transaction_date`

// PostgresStore keeps products and the ledger in Postgres. It implements
// Store, ProductFilterer, MetricsRepository, SalesRepository and
// stock.AtomicRecorder.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ProductID, &p.ProductName, &p.SKUID, &p.PurchasePrice, &p.SalesPrice,
		&p.Stock, &p.ReorderLevel, &p.VendorID, &p.Status, &p.Version)
	return p, err
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var tx models.Transaction
	var txType string
	var date time.Time
	err := row.Scan(&tx.TransactionID, &txType, &tx.ProductID, &tx.Rate, &tx.Quantity,
		&tx.TransactionValue, &tx.UserID, &date)
	tx.TransactionType = models.TransactionType(txType)
	tx.TransactionDate = models.NewDate(date)
	return tx, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateProduct inserts a product with version 1. An empty ProductID is
// filled from product_id_seq.
func (r *PostgresStore) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (COALESCE(NULLIF($1, ''), 'PRD' || LPAD(nextval('product_id_seq')::text, 5, '0')),
		        $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanProduct(r.db.QueryRowContext(ctx, query, p.ProductID, p.ProductName, p.SKUID,
		p.PurchasePrice, p.SalesPrice, p.Stock, p.ReorderLevel, p.VendorID, p.Status))
	if isUniqueViolation(err) {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrDuplicateProduct, p.ProductID)
	}
	return created, err
}

func (r *PostgresStore) AllocateTransactionID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('transaction_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate transaction id: %w", err)
	}
	return id, nil
}

func (r *PostgresStore) GetProductByID(ctx context.Context, productID string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	return p, err
}

func (r *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return r.FilterProducts(ctx, ProductFilter{})
}

func (r *PostgresStore) FilterProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	conditions, args := filterConditions(f)
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions + ` ORDER BY product_id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func filterConditions(f ProductFilter) (string, []any) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.Name != "" {
		query += fmt.Sprintf(" AND product_name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}
	if f.Vendor != "" {
		query += fmt.Sprintf(" AND vendor_id ILIKE $%d", argIdx)
		args = append(args, "%"+f.Vendor+"%")
	}
	if f.LowStock {
		query += " AND stock <= reorder_level"
	}

	return query, args
}

// UpdateProduct replaces the catalog fields. Stock only moves through the ledger.
func (r *PostgresStore) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		UPDATE products
		SET product_name = $1, sku_id = $2, purchase_price = $3, sales_price = $4,
		    reorder_level = $5, vendor_id = $6, status = $7, version = version + 1
		WHERE product_id = $8 AND ($9::bigint = 0 OR version = $9)
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query, p.ProductName, p.SKUID, p.PurchasePrice,
		p.SalesPrice, p.ReorderLevel, p.VendorID, p.Status, p.ProductID, p.Version))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetProductByID(ctx, p.ProductID); getErr != nil {
			return models.Product{}, getErr
		}
		return models.Product{}, models.ErrVersionConflict
	}
	return updated, err
}

func (r *PostgresStore) DeleteProduct(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE product_id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, productID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, tx models.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.ExecContext(ctx, query, tx.TransactionID, string(tx.TransactionType), tx.ProductID,
		tx.Rate, tx.Quantity, tx.TransactionValue, tx.UserID, tx.TransactionDate.Time)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %d", models.ErrDuplicateTransaction, tx.TransactionID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	// Ids chosen by the caller (retries, local fallback ids) move the sequence
	// past them so nextval never hands them out again.
	_, err = db.ExecContext(ctx, `
		SELECT setval('transaction_id_seq', GREATEST($1::bigint, last_value))
		FROM transaction_id_seq
		WHERE $1::bigint >= last_value`, tx.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to advance transaction id sequence: %w", err)
	}
	return nil
}

func (r *PostgresStore) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return insertTransaction(ctx, r.db, tx)
}

func (r *PostgresStore) RemoveTransaction(ctx context.Context, transactionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %d", models.ErrTransactionNotFound, transactionID)
	}
	return nil
}

func (r *PostgresStore) ApplyStockDelta(ctx context.Context, productID string, quantity decimal.Decimal, t models.TransactionType) error {
	query := `
		UPDATE products
		SET stock = stock + $1, version = version + 1
		WHERE product_id = $2 AND stock + $1 >= 0
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	delta := quantity.Mul(decimal.NewFromInt(int64(t.Sign())))
	res, err := r.db.ExecContext(ctx, query, delta, productID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetProductByID(ctx, productID); err != nil {
			return err
		}
		return models.ErrInsufficientStock
	}
	return nil
}

// RecordTransaction applies the stock change and inserts the ledger entry in
// one database transaction, guarded by the product version.
func (r *PostgresStore) RecordTransaction(ctx context.Context, tx models.Transaction, expectedVersion int64) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	query := `
		UPDATE products
		SET stock = stock + $1, version = version + 1
		WHERE product_id = $2 AND stock + $1 >= 0 AND ($3::bigint = 0 OR version = $3)
		RETURNING ` + productColumns
	p, err := scanProduct(dbtx.QueryRowContext(ctx, query, tx.Delta(), tx.ProductID, expectedVersion))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, rejectedReason(ctx, dbtx, tx, expectedVersion)
	}
	if err != nil {
		return models.Product{}, err
	}

	if err := insertTransaction(ctx, dbtx, tx); err != nil {
		return models.Product{}, err
	}
	if err := dbtx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

func rejectedReason(ctx context.Context, dbtx *sql.Tx, tx models.Transaction, expectedVersion int64) error {
	var current decimal.Decimal
	var version int64
	err := dbtx.QueryRowContext(ctx, `SELECT stock, version FROM products WHERE product_id = $1`, tx.ProductID).
		Scan(&current, &version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %s", models.ErrProductNotFound, tx.ProductID)
	case err != nil:
		return err
	case expectedVersion != 0 && version != expectedVersion:
		return models.ErrVersionConflict
	default:
		return models.ErrInsufficientStock
	}
}

func (r *PostgresStore) ListTransactionsByType(ctx context.Context, t models.TransactionType) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_type = $1 ORDER BY transaction_id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
