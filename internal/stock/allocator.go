package stock

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Allocator obtains transaction ids from the remote store and falls back to a
// local sequence when the store is unavailable. Next never fails.
type Allocator struct {
	source  IDSource
	floor   int64
	timeout time.Duration
	log     *logrus.Logger

	mu        sync.Mutex
	lastKnown int64
}

func NewAllocator(source IDSource, floor int64, timeout time.Duration, log *logrus.Logger) *Allocator {
	if floor <= 0 {
		floor = 1
	}
	return &Allocator{
		source:  source,
		floor:   floor,
		timeout: timeout,
		log:     log,
	}
}

// Next returns a usable transaction id.
func (a *Allocator) Next(ctx context.Context) int64 {
	if a.source != nil {
		if id, err := a.fromSource(ctx); err == nil && id > 0 {
			a.Observe(id)
			return id
		} else if err != nil {
			a.log.WithError(err).Warn("transaction id allocation failed, using local sequence")
		} else {
			a.log.WithField("id", id).Warn("unusable transaction id from remote, using local sequence")
		}
	}
	return a.local()
}

func (a *Allocator) fromSource(ctx context.Context) (int64, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.source.AllocateTransactionID(ctx)
}

func (a *Allocator) local() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := max(a.lastKnown+1, a.floor)
	a.lastKnown = next
	return next
}

// Observe raises the local sequence so fallback ids never go below an id
// already seen.
func (a *Allocator) Observe(id int64) {
	a.mu.Lock()
	if id > a.lastKnown {
		a.lastKnown = id
	}
	a.mu.Unlock()
}
