package versioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/metrics"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// CreateVersion starts a new chain with version 1 in DRAFT.
func (s *Service) CreateVersion(ctx context.Context, input CreateVersionInput) (domain.VersionedEntity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.VersionedEntity{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.VersionedEntity{}, err
	}

	schema, _ := input.Kind.Schema()

	versionHash, err := s.identityHash(schema, input.Content)
	if err != nil {
		return domain.VersionedEntity{}, fmt.Errorf("hash content: %w", err)
	}

	var created domain.VersionedEntity
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		parent, getErr := s.resources.GetByID(txCtx, input.ParentID)
		if getErr != nil {
			return fmt.Errorf("get parent: %w", getErr)
		}
		if parent.Kind != schema.ParentKind {
			return domain.NewValidationError("parent_id", fmt.Sprintf("must be a %s resource", schema.ParentKind))
		}

		exists, existsErr := s.versions.ChainExists(txCtx, input.Kind, input.ParentID)
		if existsErr != nil {
			return fmt.Errorf("check chain: %w", existsErr)
		}
		if exists {
			return fmt.Errorf("%s chain for %s: %w", input.Kind, input.ParentID, domain.ErrAlreadyExists)
		}

		var createErr error
		created, createErr = s.versions.Create(txCtx, domain.VersionedEntity{
			ID:               uuid.New(),
			Kind:             input.Kind,
			ParentResourceID: input.ParentID,
			Version:          1,
			Content:          input.Content,
			VersionHash:      versionHash,
			HashAlgorithm:    s.cfg.Algorithm.String(),
			Status:           domain.VersionStatusDraft,
			CreatedBy:        userID,
			CreatedAt:        s.timestamp(),
		})
		if createErr != nil {
			// A concurrent creator won the version 1 slot.
			if domain.IsRetryable(createErr) {
				return fmt.Errorf("%s chain for %s: %w", input.Kind, input.ParentID, domain.ErrAlreadyExists)
			}
			return fmt.Errorf("create version: %w", createErr)
		}

		if _, auditErr := s.audit.Append(txCtx, ledger.AppendInput{
			EventType:    schema.CreatedEvent,
			UserID:       &userID,
			Action:       "create",
			ResourceType: input.Kind.String(),
			ResourceID:   created.ID.String(),
			Details: map[string]any{
				"parentResourceId": input.ParentID.String(),
				"version":          created.Version,
				"versionHash":      created.VersionHash,
				"hashAlgorithm":    created.HashAlgorithm,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	s.metrics.ObserveVersionOp(input.Kind.String(), "create", metrics.Outcome(err, isRace))
	if err != nil {
		return domain.VersionedEntity{}, err
	}

	s.log.InfoContext(ctx, "version chain created",
		slog.String("user_id", userID.String()),
		slog.String("kind", input.Kind.String()),
		slog.String("parent_id", input.ParentID.String()),
		slog.String("version_id", created.ID.String()),
	)

	return created, nil
}

// isRace reports a lost race, including a create that found the slot taken.
func isRace(err error) bool {
	return domain.IsRetryable(err) || errors.Is(err, domain.ErrAlreadyExists)
}
