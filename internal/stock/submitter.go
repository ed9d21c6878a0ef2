package stock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type Mode string

const (
	// ModeSequential writes the ledger entry and then the stock change; the
	// second write is attempted whatever happened to the first and nothing is
	// rolled back.
	ModeSequential Mode = "sequential"
	// ModeSaga stops after a failed ledger write and removes the ledger entry
	// again when the stock write fails.
	ModeSaga Mode = "saga"
	// ModeAtomic hands both writes to the store in one call when it
	// implements AtomicRecorder, and behaves like ModeSaga otherwise.
	ModeAtomic Mode = "atomic"
)

const SuccessMessage = "Transaction saved"

// AlertRecorder is told about every saved issue that hit the reorder level.
type AlertRecorder interface {
	RecordReorder(ctx context.Context, p models.Product, projected decimal.Decimal, userID string) error
}

type Options struct {
	Mode         Mode
	WriteTimeout time.Duration
	GuardTTL     time.Duration
	Now          func() time.Time
	Alerts       AlertRecorder
}

// Submission is one press of the Save button on the stock entry form.
type Submission struct {
	ProductID       string
	TransactionType models.TransactionType
	Form            Form
	// TransactionID is the id shown on the form. Zero asks the allocator for
	// one; resubmitting after a failure sends the same id back.
	TransactionID int64
	UserID        string
}

type Receipt struct {
	Transaction    models.Transaction `json:"transaction"`
	ProjectedStock decimal.Decimal    `json:"projectedStock"`
	Warning        string             `json:"warning,omitempty"`
	Message        string             `json:"message"`
}

// Submitter records stock transactions: ledger entry plus stock change.
type Submitter struct {
	backend   Backend
	allocator *Allocator
	guard     Guard
	log       *logrus.Logger
	opts      Options

	mu      sync.Mutex
	partial map[int64]partialWrite
}

// partialWrite is what is known about a transaction id whose last submission
// left the ledger and the stock out of step. It lives in process memory only.
type partialWrite struct {
	tx            models.Transaction
	ledgerWritten bool
	stockApplied  bool
	claimed       bool
}

func NewSubmitter(backend Backend, allocator *Allocator, guard Guard, log *logrus.Logger, opts Options) *Submitter {
	if opts.Mode == "" {
		opts.Mode = ModeSequential
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.GuardTTL <= 0 {
		opts.GuardTTL = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if guard == nil {
		guard = NewMemoryGuard()
	}
	return &Submitter{
		backend:   backend,
		allocator: allocator,
		guard:     guard,
		log:       log,
		opts:      opts,
		partial:   make(map[int64]partialWrite),
	}
}

func (s *Submitter) Mode() Mode {
	return s.opts.Mode
}

// Quote validates the form against a fresh product snapshot and returns the
// derived value without writing anything.
func (s *Submitter) Quote(ctx context.Context, productID string, t models.TransactionType, f Form) (Quote, error) {
	product, err := s.backend.GetProductByID(ctx, productID)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}
	q, _, err := NewQuote(product, t, f, s.opts.Now())
	return q, err
}

// Submit validates and records one stock transaction.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	if !sub.TransactionType.Valid() {
		return Receipt{}, fmt.Errorf("invalid transaction type %q", sub.TransactionType)
	}

	parsed, err := sub.Form.Parse(s.opts.Now())
	if err != nil {
		return Receipt{}, err
	}

	key := submissionKey(sub.ProductID, sub.UserID)
	token, ok, err := s.guard.Acquire(ctx, key, s.opts.GuardTTL)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to acquire submission guard: %w", err)
	}
	if !ok {
		return Receipt{}, ErrSubmissionInProgress
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to release submission guard")
		}
	}()

	product, err := s.backend.GetProductByID(ctx, sub.ProductID)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to fetch product %s: %w", sub.ProductID, err)
	}

	pw, found, err := s.claimPartial(sub.TransactionID)
	if err != nil {
		return Receipt{}, err
	}
	if found {
		return s.complete(ctx, pw, sub, parsed, product)
	}

	quote, entry, err := NewQuote(product, sub.TransactionType, sub.Form, s.opts.Now())
	if err != nil {
		return Receipt{}, err
	}

	id := sub.TransactionID
	if id <= 0 {
		id = s.allocator.Next(ctx)
	}

	tx := models.Transaction{
		TransactionID:    id,
		TransactionType:  sub.TransactionType,
		ProductID:        product.ProductID,
		Rate:             quote.Rate,
		Quantity:         entry.Quantity,
		TransactionValue: quote.Value,
		UserID:           sub.UserID,
		TransactionDate:  entry.Date,
	}

	entryLog := s.log.WithFields(logrus.Fields{
		"transaction_id": tx.TransactionID,
		"product_id":     tx.ProductID,
		"type":           tx.TransactionType,
		"quantity":       tx.Quantity.String(),
		"mode":           s.opts.Mode,
	})

	// Once the writes start they run to completion even if the caller goes away.
	writeCtx := context.WithoutCancel(ctx)
	if err := s.write(writeCtx, tx, product.Version); err != nil {
		s.rememberPartial(tx, err)
		entryLog.WithError(err).Error("stock transaction failed")
		return Receipt{}, err
	}

	s.allocator.Observe(tx.TransactionID)
	entryLog.Info("stock transaction recorded")
	return s.receipt(writeCtx, entryLog, product, tx, quote.Reorder, sub.UserID), nil
}

func (s *Submitter) receipt(ctx context.Context, entryLog *logrus.Entry, product models.Product, tx models.Transaction, rc ReorderCheck, userID string) Receipt {
	receipt := Receipt{
		Transaction:    tx,
		ProjectedStock: rc.Projected,
		Message:        SuccessMessage,
	}
	if rc.Warning {
		receipt.Warning = rc.Message
		entryLog.WithFields(logrus.Fields{
			"projected":     rc.Projected.String(),
			"reorder_level": product.ReorderLevel.String(),
		}).Warn("⚠️ product reached its reorder level")
		if s.opts.Alerts != nil {
			if err := s.opts.Alerts.RecordReorder(ctx, product, rc.Projected, userID); err != nil {
				entryLog.WithError(err).Warn("failed to record reorder alert")
			}
		}
	}
	return receipt
}

// complete finishes a transaction id that an earlier submission left
// partially recorded, writing only the side that is still missing.
func (s *Submitter) complete(ctx context.Context, pw partialWrite, sub Submission, entry Entry, product models.Product) (Receipt, error) {
	tx := pw.tx
	if tx.ProductID != sub.ProductID || tx.TransactionType != sub.TransactionType || !tx.Quantity.Equal(entry.Quantity) {
		s.storePartial(pw)
		return Receipt{}, ErrRetryMismatch
	}

	entryLog := s.log.WithFields(logrus.Fields{
		"transaction_id": tx.TransactionID,
		"product_id":     tx.ProductID,
		"type":           tx.TransactionType,
		"quantity":       tx.Quantity.String(),
		"mode":           s.opts.Mode,
		"ledger_written": pw.ledgerWritten,
		"stock_applied":  pw.stockApplied,
	})

	writeCtx := context.WithoutCancel(ctx)
	if !pw.ledgerWritten {
		if err := s.createLedger(writeCtx, tx); err != nil && !errors.Is(err, models.ErrDuplicateTransaction) {
			entryLog.WithError(err).Error("stock transaction retry failed")
			s.storePartial(pw)
			return Receipt{}, &PartialFailureError{
				TransactionID: tx.TransactionID,
				StockApplied:  pw.stockApplied,
				Err:           &WriteError{Op: "ledger", Err: err},
			}
		}
		pw.ledgerWritten = true
	}

	// The product was read before this call, so its stock already holds the
	// delta only when the earlier submission applied it.
	before := product
	if pw.stockApplied {
		before.Stock = product.Stock.Sub(tx.Delta())
	} else if err := s.applyStock(writeCtx, tx); err != nil {
		entryLog.WithError(err).Error("stock transaction retry failed")
		s.storePartial(pw)
		return Receipt{}, &PartialFailureError{
			TransactionID: tx.TransactionID,
			LedgerWritten: true,
			Err:           &WriteError{Op: "stock", Err: err},
		}
	}

	s.clearPartial(tx.TransactionID)
	s.allocator.Observe(tx.TransactionID)
	entryLog.Info("stock transaction completed on retry")
	return s.receipt(writeCtx, entryLog, product, tx, CheckReorder(before, tx.TransactionType, tx.Quantity), sub.UserID), nil
}

// claimPartial marks a recorded partial write as being completed so a second
// retry of the same id is refused while the first runs.
func (s *Submitter) claimPartial(id int64) (partialWrite, bool, error) {
	if id <= 0 {
		return partialWrite{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pw, ok := s.partial[id]
	if !ok {
		return partialWrite{}, false, nil
	}
	if pw.claimed {
		return partialWrite{}, false, ErrSubmissionInProgress
	}
	pw.claimed = true
	s.partial[id] = pw
	return pw, true, nil
}

func (s *Submitter) rememberPartial(tx models.Transaction, err error) {
	var pf *PartialFailureError
	if !errors.As(err, &pf) {
		return
	}
	s.storePartial(partialWrite{tx: tx, ledgerWritten: pf.LedgerWritten, stockApplied: pf.StockApplied})
}

func (s *Submitter) storePartial(pw partialWrite) {
	pw.claimed = false
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partial[pw.tx.TransactionID] = pw
}

func (s *Submitter) clearPartial(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.partial, id)
}

func (s *Submitter) write(ctx context.Context, tx models.Transaction, version int64) error {
	switch s.opts.Mode {
	case ModeAtomic:
		if rec, ok := s.backend.(AtomicRecorder); ok {
			return s.writeAtomic(ctx, rec, tx, version)
		}
		return s.writeSaga(ctx, tx)
	case ModeSaga:
		return s.writeSaga(ctx, tx)
	default:
		return s.writeSequential(ctx, tx)
	}
}

func (s *Submitter) writeSequential(ctx context.Context, tx models.Transaction) error {
	ledgerErr := s.createLedger(ctx, tx)
	if errors.Is(ledgerErr, models.ErrDuplicateTransaction) {
		// The id is already in the ledger and nothing says whether its stock
		// change landed, so the stock is left alone.
		return fmt.Errorf("transaction %d already recorded: %w", tx.TransactionID, ledgerErr)
	}
	stockErr := s.applyStock(ctx, tx)

	switch {
	case ledgerErr == nil && stockErr == nil:
		return nil
	case ledgerErr != nil && stockErr != nil:
		return &WriteError{Op: "ledger and stock", Err: multierr.Combine(ledgerErr, stockErr)}
	case ledgerErr != nil:
		return &PartialFailureError{
			TransactionID: tx.TransactionID,
			StockApplied:  true,
			Err:           &WriteError{Op: "ledger", Err: ledgerErr},
		}
	default:
		return &PartialFailureError{
			TransactionID: tx.TransactionID,
			LedgerWritten: true,
			Err:           &WriteError{Op: "stock", Err: stockErr},
		}
	}
}

func (s *Submitter) writeSaga(ctx context.Context, tx models.Transaction) error {
	if err := s.createLedger(ctx, tx); err != nil {
		if errors.Is(err, models.ErrDuplicateTransaction) {
			return fmt.Errorf("transaction %d already recorded: %w", tx.TransactionID, err)
		}
		return &WriteError{Op: "ledger", Err: err}
	}

	stockErr := s.applyStock(ctx, tx)
	if stockErr == nil {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()
	if err := s.backend.RemoveTransaction(cctx, tx.TransactionID); err != nil {
		return &PartialFailureError{
			TransactionID: tx.TransactionID,
			LedgerWritten: true,
			Err:           &WriteError{Op: "stock", Err: multierr.Combine(stockErr, fmt.Errorf("compensation failed: %w", err))},
		}
	}
	s.log.WithField("transaction_id", tx.TransactionID).Warn("stock write failed, ledger entry removed")
	return &WriteError{Op: "stock", Err: stockErr}
}

func (s *Submitter) writeAtomic(ctx context.Context, rec AtomicRecorder, tx models.Transaction, version int64) error {
	cctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	if _, err := rec.RecordTransaction(cctx, tx, version); err != nil {
		if errors.Is(err, models.ErrVersionConflict) {
			return err
		}
		return &WriteError{Op: "record", Err: err}
	}
	return nil
}

func (s *Submitter) createLedger(ctx context.Context, tx models.Transaction) error {
	cctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()
	return s.backend.CreateTransaction(cctx, tx)
}

func (s *Submitter) applyStock(ctx context.Context, tx models.Transaction) error {
	cctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()
	return s.backend.ApplyStockDelta(cctx, tx.ProductID, tx.Quantity, tx.TransactionType)
}
