package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrUnusableID is returned when an id generator answers with something that
// cannot be used as an id.
var ErrUnusableID = errors.New("unusable transaction id")

// APIError is a non-2xx answer from the inventory API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Client talks to the inventory REST API that owns products and the
// transaction ledger.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// idempotencyKey is stable per transaction so a resubmission carries the same key.
func idempotencyKey(transactionID int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("transaction:"+strconv.FormatInt(transactionID, 10))).String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, headers ...http.Header) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(middleware.RequestIDHeader, reqID)
	}
	if len(headers) > 0 {
		for key, value := range headers[0] {
			req.Header[key] = value
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("inventory api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// AllocateTransactionID asks the API for the next ledger id.
func (c *Client) AllocateTransactionID(ctx context.Context) (int64, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/trans/generate", nil, nil, &raw); err != nil {
		return 0, err
	}
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnusableID, s)
	}
	return id, nil
}

func (c *Client) GetProductByID(ctx context.Context, productID string) (models.Product, error) {
	var p models.Product
	err := c.do(ctx, http.MethodGet, "/product/"+url.PathEscape(productID), nil, nil, &p)
	if isNotFound(err) {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	return p, err
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/product", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct saves a new product. An empty ProductID is filled from the
// API's product id generator first.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ProductID == "" {
		var raw json.RawMessage
		if err := c.do(ctx, http.MethodGet, "/id-gen", nil, nil, &raw); err != nil {
			return models.Product{}, err
		}
		p.ProductID = strings.Trim(strings.TrimSpace(string(raw)), `"`)
		if p.ProductID == "" {
			return models.Product{}, fmt.Errorf("%w: empty product id", ErrUnusableID)
		}
	}

	err := c.do(ctx, http.MethodPost, "/product", nil, p, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrDuplicateProduct, p.ProductID)
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces the product record; the API expects the full body.
func (c *Client) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	err := c.do(ctx, http.MethodPut, "/product", nil, p, nil)
	if isNotFound(err) {
		return models.Product{}, fmt.Errorf("%w: %s", models.ErrProductNotFound, p.ProductID)
	}
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	err := c.do(ctx, http.MethodDelete, "/product/"+url.PathEscape(productID), nil, nil, nil)
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	return err
}

func (c *Client) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	h := http.Header{}
	h.Set("Idempotency-Key", idempotencyKey(tx.TransactionID))
	err := c.do(ctx, http.MethodPost, "/stock", nil, tx, nil, h)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %d", models.ErrDuplicateTransaction, tx.TransactionID)
	}
	return err
}

func (c *Client) RemoveTransaction(ctx context.Context, transactionID int64) error {
	err := c.do(ctx, http.MethodDelete, "/stock/"+strconv.FormatInt(transactionID, 10), nil, nil, nil)
	if isNotFound(err) {
		return fmt.Errorf("%w: %d", models.ErrTransactionNotFound, transactionID)
	}
	return err
}

// ApplyStockDelta moves the product stock up (IN) or down (OUT) by quantity.
func (c *Client) ApplyStockDelta(ctx context.Context, productID string, quantity decimal.Decimal, t models.TransactionType) error {
	q := url.Values{}
	q.Set("quantity", quantity.String())
	q.Set("flag", t.Flag())
	err := c.do(ctx, http.MethodPut, "/stock/"+url.PathEscape(productID), q, nil, nil)
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", models.ErrProductNotFound, productID)
	}
	return err
}

func (c *Client) ListTransactionsByType(ctx context.Context, t models.TransactionType) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/trans/type/"+string(t), nil, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}
