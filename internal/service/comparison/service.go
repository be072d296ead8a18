// Package comparison diffs two versions of the same chain. Stored results
// carry line digests and counts only; raw text is released on request when
// the sensitivity scanner finds nothing.
package comparison

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

type versionReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error)
}

type comparisonRepo interface {
	Create(ctx context.Context, c domain.StoredComparison) (domain.StoredComparison, error)
	ListByVersion(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error)
}

type sensitivityScanner interface {
	Scan(ctx context.Context, text string) (domain.ScanResult, error)
}

type auditLogger interface {
	Append(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type metricsRecorder interface {
	ObserveComparison(added, removed int, sensitive bool)
}

const (
	DefaultMaxLines     = 5000
	DefaultMaxCells     = 4_000_000
	DefaultDigestLength = 16
	DefaultListLimit    = 50
	MaxListLimit        = 200
)

// Config holds diff limits and rendering options.
type Config struct {
	Algorithm    contenthash.Algorithm
	MaxLines     int
	MaxCells     int
	ContextLines int
	DigestLength int
}

// Service provides version comparison operations.
type Service struct {
	versions    versionReader
	comparisons comparisonRepo
	scanner     sensitivityScanner
	audit       auditLogger
	tx          txManager
	metrics     metricsRecorder
	cfg         Config
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new comparison service. metrics may be nil.
func NewService(
	log *slog.Logger,
	versions versionReader,
	comparisons comparisonRepo,
	scanner sensitivityScanner,
	audit auditLogger,
	tx txManager,
	metrics metricsRecorder,
	cfg Config,
) *Service {
	if cfg.Algorithm == "" {
		cfg.Algorithm = contenthash.Default
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = DefaultMaxLines
	}
	if cfg.MaxCells <= 0 {
		cfg.MaxCells = DefaultMaxCells
	}
	if cfg.ContextLines < 0 {
		cfg.ContextLines = 3
	}
	if cfg.DigestLength <= 0 {
		cfg.DigestLength = DefaultDigestLength
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		versions:    versions,
		comparisons: comparisons,
		scanner:     scanner,
		audit:       audit,
		tx:          tx,
		metrics:     metrics,
		cfg:         cfg,
		log:         log.With("service", "comparison"),
		now:         time.Now,
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveComparison(int, int, bool) {}
