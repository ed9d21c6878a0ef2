package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/smtp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DailyReorderLogKey = "alerts:reorder:daily"

// Entry is one issue that brought a product to its reorder level.
type Entry struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	UserID       string          `json:"userId"`
	Projected    decimal.Decimal `json:"projected"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Time         time.Time       `json:"time"`
}

// Log is where entries wait for the next daily summary.
type Log interface {
	Push(ctx context.Context, e Entry) error
	// Pending returns the waiting entries without removing them, plus the
	// number of log items read.
	Pending(ctx context.Context) ([]Entry, int64, error)
	// Remove drops the n oldest items once they have been reported.
	Remove(ctx context.Context, n int64) error
}

type RedisLog struct {
	rdb *redis.Client
	key string
}

func NewRedisLog(rdb *redis.Client) *RedisLog {
	return &RedisLog{rdb: rdb, key: DailyReorderLogKey}
}

func (l *RedisLog) Push(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return l.rdb.RPush(ctx, l.key, data).Err()
}

// Pending reads the whole list. Items that do not decode are counted but skipped.
func (l *RedisLog) Pending(ctx context.Context) ([]Entry, int64, error) {
	items, err := l.rdb.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, 0, err
	}

	var entries []Entry
	for _, item := range items {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, int64(len(items)), nil
}

// Remove trims the head of the list. Entries pushed after Pending stay.
func (l *RedisLog) Remove(ctx context.Context, n int64) error {
	if n <= 0 {
		return nil
	}
	return l.rdb.LTrim(ctx, l.key, n, -1).Err()
}

// MemoryLog is a process-local Log.
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Push(_ context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

func (l *MemoryLog) Pending(_ context.Context) ([]Entry, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := append([]Entry(nil), l.entries...)
	return entries, int64(len(entries)), nil
}

func (l *MemoryLog) Remove(_ context.Context, n int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > int64(len(l.entries)) {
		n = int64(len(l.entries))
	}
	l.entries = l.entries[n:]
	return nil
}

type Mailer interface {
	Send(subject, htmlBody string) error
}

type SMTPConfig struct {
	From         string
	To           string
	Server       string
	Port         string
	User         string
	Password     string
	AuthDisabled bool
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + m.cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.Server, m.cfg.Port)
	var auth smtp.Auth
	if !m.cfg.AuthDisabled {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Server)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(msg))
}

// Recorder keeps the reorder alert log and mails the daily summary.
type Recorder struct {
	log    Log
	mailer Mailer
	logger *logrus.Logger
	now    func() time.Time
}

// NewRecorder builds a Recorder. A nil mailer writes the summary to the
// logger instead of sending it.
func NewRecorder(log Log, mailer Mailer, logger *logrus.Logger) *Recorder {
	return &Recorder{log: log, mailer: mailer, logger: logger, now: time.Now}
}

func (r *Recorder) RecordReorder(ctx context.Context, p models.Product, projected decimal.Decimal, userID string) error {
	return r.log.Push(ctx, Entry{
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		UserID:       userID,
		Projected:    projected,
		ReorderLevel: p.ReorderLevel,
		Time:         r.now(),
	})
}

// SendDailySummary sends one summary of the pending entries and removes them
// from the log only after it went out. Nothing is sent for an empty log.
func (r *Recorder) SendDailySummary(ctx context.Context) error {
	entries, read, err := r.log.Pending(ctx)
	if err != nil {
		return fmt.Errorf("failed to read reorder log: %w", err)
	}
	if read == 0 {
		return nil
	}

	if len(entries) > 0 {
		if r.mailer == nil {
			r.logger.WithField("alerts", len(entries)).Info("📬 daily reorder summary (no mailer configured)")
		} else {
			if err := r.mailer.Send("📦 Daily Reorder Report", BuildSummary(entries)); err != nil {
				return fmt.Errorf("failed to send reorder summary: %w", err)
			}
			r.logger.WithField("alerts", len(entries)).Info("📬 Daily reorder summary sent via SMTP.")
		}
	}

	if err := r.log.Remove(ctx, read); err != nil {
		return fmt.Errorf("failed to clear reported reorder alerts: %w", err)
	}
	return nil
}

// StartDailySummary sends the summary every day at 23:59 until ctx is done.
func (r *Recorder) StartDailySummary(ctx context.Context) {
	for {
		now := r.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		if err := r.SendDailySummary(ctx); err != nil {
			r.logger.WithError(err).Error("❌ Failed to send daily reorder summary")
		}
	}
}

// BuildSummary renders the HTML body: totals by product, by user and the full list.
func BuildSummary(entries []Entry) string {
	productCounts := make(map[string]int)
	userCounts := make(map[string]int)
	for _, e := range entries {
		productCounts[html.EscapeString(e.ProductName+" ("+e.ProductID+")")]++
		userCounts[html.EscapeString(e.UserID)]++
	}

	var sb strings.Builder
	sb.WriteString("<h2>📦 Daily Reorder Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Products at reorder level: <strong>%d</strong> alerts</p>", len(entries)))

	sb.WriteString("<h3>By Product</h3><ul>")
	for _, name := range sortedKeys(productCounts) {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", name, productCounts[name]))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>👤 By User</h3><ul>")
	for _, user := range sortedKeys(userCounts) {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", user, userCounts[user]))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> issued by %s left %s (reorder level %s) at %s</li>",
			html.EscapeString(e.ProductName), html.EscapeString(e.UserID), e.Projected.String(), e.ReorderLevel.String(), e.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
