package stock

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Guard keeps a second submission for the same key out while one is in flight.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

type heldKey struct {
	token   string
	expires time.Time
}

// MemoryGuard is a process-local Guard.
type MemoryGuard struct {
	mu   sync.Mutex
	seq  int64
	held map[string]heldKey
	now  func() time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		held: make(map[string]heldKey),
		now:  time.Now,
	}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if h, ok := g.held[key]; ok && now.Before(h.expires) {
		return "", false, nil
	}
	g.seq++
	token := strconv.FormatInt(g.seq, 10)
	g.held[key] = heldKey{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if h, ok := g.held[key]; ok && h.token == token {
		delete(g.held, key)
	}
	return nil
}

func submissionKey(productID, userID string) string {
	return "submit:" + productID + ":" + userID
}
