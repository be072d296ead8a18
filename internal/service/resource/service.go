package resource

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

type resourceRepo interface {
	Create(ctx context.Context, res domain.Resource) (domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Resource, error)
}

type auditLogger interface {
	Append(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the parent resources that version chains hang off.
type Service struct {
	resources resourceRepo
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
	now       func() time.Time
}

func NewService(log *slog.Logger, resources resourceRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		resources: resources,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "resource"),
		now:       time.Now,
	}
}
