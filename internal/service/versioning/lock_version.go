package versioning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/metrics"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// LockVersion freezes a DRAFT version. Locked versions cannot be edited or
// superseded.
func (s *Service) LockVersion(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.VersionedEntity{}, domain.ErrUnauthorized
	}

	var locked domain.VersionedEntity
	err := s.withRetry(ctx, "lock", func() error {
		return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			cur, getErr := s.versions.GetByID(txCtx, versionID)
			if getErr != nil {
				return fmt.Errorf("get version: %w", getErr)
			}

			if err := domain.ValidateTransition(cur.Status, domain.VersionStatusLocked); err != nil {
				return fmt.Errorf("version %s is %s: %w", cur.ID, cur.Status, err)
			}

			schema, ok := cur.Kind.Schema()
			if !ok {
				return fmt.Errorf("version %s: unknown kind %q: %w", cur.ID, cur.Kind, domain.ErrValidation)
			}

			now := s.timestamp()
			if err := s.versions.CompareAndSetStatus(txCtx, cur.ID, domain.VersionStatusDraft, domain.VersionStatusLocked, &userID, &now); err != nil {
				return fmt.Errorf("lock version: %w", err)
			}

			cur.Status = domain.VersionStatusLocked
			cur.LockedAt = &now
			cur.LockedBy = &userID
			locked = cur

			if _, auditErr := s.audit.Append(txCtx, ledger.AppendInput{
				EventType:    schema.LockedEvent,
				UserID:       &userID,
				Action:       "lock",
				ResourceType: cur.Kind.String(),
				ResourceID:   cur.ID.String(),
				Details: map[string]any{
					"parentResourceId": cur.ParentResourceID.String(),
					"version":          cur.Version,
					"versionHash":      cur.VersionHash,
					"hashAlgorithm":    cur.HashAlgorithm,
				},
			}); auditErr != nil {
				return fmt.Errorf("audit log: %w", auditErr)
			}

			return nil
		})
	})
	s.metrics.ObserveVersionOp(locked.Kind.String(), "lock", metrics.Outcome(err, domain.IsRetryable))
	if err != nil {
		return domain.VersionedEntity{}, err
	}

	s.log.InfoContext(ctx, "version locked",
		slog.String("user_id", userID.String()),
		slog.String("kind", locked.Kind.String()),
		slog.String("version_id", locked.ID.String()),
		slog.Int("version", locked.Version),
	)

	return locked, nil
}
