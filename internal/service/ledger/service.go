// Package ledger appends to and verifies the tamper-evident audit chain.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

type entryRepo interface {
	LockLedger(ctx context.Context, key int64) error
	Insert(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	Last(ctx context.Context) (domain.AuditEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error)
	Stream(ctx context.Context, fn func(domain.AuditEntry) bool) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
	InTx(ctx context.Context) bool
}

type metricsRecorder interface {
	ObserveAppend(eventType, outcome string, retries int, d time.Duration)
	ObserveVerify(valid bool, entries int)
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Config holds ledger tuning values.
type Config struct {
	Algorithm     contenthash.Algorithm
	AppendRetries int
	LockKey       int64
}

// Service provides ledger operations.
type Service struct {
	entries entryRepo
	tx      txManager
	metrics metricsRecorder
	cfg     Config
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new ledger service. metrics may be nil.
func NewService(
	log *slog.Logger,
	entries entryRepo,
	tx txManager,
	metrics metricsRecorder,
	cfg Config,
) *Service {
	if cfg.Algorithm == "" {
		cfg.Algorithm = contenthash.Default
	}
	if cfg.AppendRetries < 0 {
		cfg.AppendRetries = 0
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		entries: entries,
		tx:      tx,
		metrics: metrics,
		cfg:     cfg,
		log:     log.With("service", "ledger"),
		now:     time.Now,
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveAppend(string, string, int, time.Duration) {}
func (noopMetrics) ObserveVerify(bool, int)                          {}
