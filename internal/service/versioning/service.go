// Package versioning manages immutable version chains for topics, artifacts
// and manuscripts. Every state change is recorded in the audit ledger in the
// same transaction.
package versioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/auditchain"
	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

type versionRepo interface {
	Create(ctx context.Context, v domain.VersionedEntity) (domain.VersionedEntity, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.VersionStatus, lockedBy *uuid.UUID, lockedAt *time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error)
	GetCurrent(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error)
	ChainExists(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (bool, error)
	History(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID, page domain.HistoryPage) ([]domain.VersionedEntity, error)
}

type resourceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Resource, error)
}

type auditLogger interface {
	Append(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type metricsRecorder interface {
	ObserveVersionOp(kind, op, outcome string)
}

const (
	DefaultHistoryPageSize = 20
	MaxHistoryPageSize     = 200
)

// Config holds versioning tuning values.
type Config struct {
	Algorithm       contenthash.Algorithm
	MaxRetries      int
	HistoryPageSize int
}

// Service provides version chain operations.
type Service struct {
	versions  versionRepo
	resources resourceRepo
	audit     auditLogger
	tx        txManager
	metrics   metricsRecorder
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new versioning service. metrics may be nil.
func NewService(
	log *slog.Logger,
	versions versionRepo,
	resources resourceRepo,
	audit auditLogger,
	tx txManager,
	metrics metricsRecorder,
	cfg Config,
) *Service {
	if cfg.Algorithm == "" {
		cfg.Algorithm = contenthash.Default
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.HistoryPageSize <= 0 || cfg.HistoryPageSize > MaxHistoryPageSize {
		cfg.HistoryPageSize = DefaultHistoryPageSize
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		versions:  versions,
		resources: resources,
		audit:     audit,
		tx:        tx,
		metrics:   metrics,
		cfg:       cfg,
		log:       log.With("service", "versioning"),
		now:       time.Now,
	}
}

// identityHash digests the identity projection of content.
func (s *Service) identityHash(schema domain.VersionSchema, content map[string]any) (string, error) {
	return contenthash.Sum(s.cfg.Algorithm, schema.IdentityContent(content))
}

// timestamp returns the current time at storage precision.
func (s *Service) timestamp() time.Time {
	return auditchain.NormalizeTime(s.now())
}

// withRetry runs op until it succeeds, fails with a non-retryable error or
// the retry budget is spent.
func (s *Service) withRetry(ctx context.Context, name string, op func() error) error {
	var err error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		err = op()
		if err == nil || !domain.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
		s.log.WarnContext(ctx, "version write lost race, retrying",
			slog.String("operation", name),
			slog.Int("attempt", attempt+1),
		)
	}
	return err
}

type noopMetrics struct{}

func (noopMetrics) ObserveVersionOp(string, string, string) {}
