package versioning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/metrics"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// UpdateVersion supersedes a DRAFT version and appends its successor with the
// merged content. Losing a race to another writer is retried; a retry that
// finds the version already superseded fails with domain.ErrInvalidState.
func (s *Service) UpdateVersion(ctx context.Context, input UpdateVersionInput) (domain.VersionedEntity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.VersionedEntity{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.VersionedEntity{}, err
	}

	var (
		next    domain.VersionedEntity
		changed bool
		kind    domain.VersionKind
	)
	err := s.withRetry(ctx, "update", func() error {
		var err error
		next, changed, kind, err = s.updateOnce(ctx, userID, input)
		return err
	})
	s.metrics.ObserveVersionOp(kind.String(), "update", metrics.Outcome(err, domain.IsRetryable))
	if err != nil {
		return domain.VersionedEntity{}, err
	}

	s.log.InfoContext(ctx, "version updated",
		slog.String("user_id", userID.String()),
		slog.String("kind", next.Kind.String()),
		slog.String("previous_version_id", input.VersionID.String()),
		slog.String("version_id", next.ID.String()),
		slog.Int("version", next.Version),
		slog.Bool("content_changed", changed),
	)

	return next, nil
}

func (s *Service) updateOnce(ctx context.Context, userID uuid.UUID, input UpdateVersionInput) (domain.VersionedEntity, bool, domain.VersionKind, error) {
	var (
		next    domain.VersionedEntity
		changed bool
		kind    domain.VersionKind
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, getErr := s.versions.GetByID(txCtx, input.VersionID)
		if getErr != nil {
			return fmt.Errorf("get version: %w", getErr)
		}
		kind = cur.Kind

		if err := domain.ValidateTransition(cur.Status, domain.VersionStatusSuperseded); err != nil {
			return fmt.Errorf("version %s is %s: %w", cur.ID, cur.Status, err)
		}

		schema, ok := cur.Kind.Schema()
		if !ok {
			return fmt.Errorf("version %s: unknown kind %q: %w", cur.ID, cur.Kind, domain.ErrValidation)
		}

		merged := domain.MergeContent(cur.Content, input.Content)
		versionHash, hashErr := s.identityHash(schema, merged)
		if hashErr != nil {
			return fmt.Errorf("hash content: %w", hashErr)
		}

		var cmpErr error
		changed, cmpErr = s.contentChanged(schema, cur, versionHash)
		if cmpErr != nil {
			return cmpErr
		}

		if err := s.versions.CompareAndSetStatus(txCtx, cur.ID, domain.VersionStatusDraft, domain.VersionStatusSuperseded, nil, nil); err != nil {
			return fmt.Errorf("supersede version: %w", err)
		}

		previousID := cur.ID
		var createErr error
		next, createErr = s.versions.Create(txCtx, domain.VersionedEntity{
			ID:                uuid.New(),
			Kind:              cur.Kind,
			ParentResourceID:  cur.ParentResourceID,
			Version:           cur.Version + 1,
			Content:           merged,
			VersionHash:       versionHash,
			HashAlgorithm:     s.cfg.Algorithm.String(),
			PreviousVersionID: &previousID,
			Status:            domain.VersionStatusDraft,
			CreatedBy:         userID,
			CreatedAt:         s.timestamp(),
		})
		if createErr != nil {
			return fmt.Errorf("create successor: %w", createErr)
		}

		if _, auditErr := s.audit.Append(txCtx, ledger.AppendInput{
			EventType:    schema.UpdatedEvent,
			UserID:       &userID,
			Action:       "update",
			ResourceType: cur.Kind.String(),
			ResourceID:   next.ID.String(),
			Details: map[string]any{
				"parentResourceId":  cur.ParentResourceID.String(),
				"previousVersionId": cur.ID.String(),
				"versionId":         next.ID.String(),
				"version":           next.Version,
				"previousHash":      cur.VersionHash,
				"versionHash":       next.VersionHash,
				"hashAlgorithm":     next.HashAlgorithm,
				"contentChanged":    changed,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	return next, changed, kind, err
}

// contentChanged compares identity digests. When cur was hashed with a
// different algorithm its content is rehashed with the current one first.
func (s *Service) contentChanged(schema domain.VersionSchema, cur domain.VersionedEntity, newHash string) (bool, error) {
	if contenthash.Algorithm(cur.HashAlgorithm) == s.cfg.Algorithm {
		return cur.VersionHash != newHash, nil
	}
	prevHash, err := s.identityHash(schema, cur.Content)
	if err != nil {
		return false, fmt.Errorf("rehash previous content: %w", err)
	}
	return prevHash != newHash, nil
}
