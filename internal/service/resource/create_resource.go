package resource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/auditchain"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// CreateResource stores a new resource and records RESOURCE_CREATED in the
// same transaction.
func (s *Service) CreateResource(ctx context.Context, input CreateResourceInput) (domain.Resource, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Resource{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Resource{}, err
	}

	var created domain.Resource
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.resources.Create(txCtx, domain.Resource{
			ID:        uuid.New(),
			Kind:      input.Kind,
			Title:     strings.TrimSpace(input.Title),
			CreatedBy: userID,
			CreatedAt: auditchain.NormalizeTime(s.now()),
		})
		if createErr != nil {
			return fmt.Errorf("create resource: %w", createErr)
		}

		if _, auditErr := s.audit.Append(txCtx, ledger.AppendInput{
			EventType:    domain.EventResourceCreated,
			UserID:       &userID,
			Action:       "create",
			ResourceType: created.Kind.String(),
			ResourceID:   created.ID.String(),
			Details: map[string]any{
				"kind":  created.Kind.String(),
				"title": created.Title,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return domain.Resource{}, err
	}

	s.log.InfoContext(ctx, "resource created",
		slog.String("user_id", userID.String()),
		slog.String("resource_id", created.ID.String()),
		slog.String("kind", created.Kind.String()),
	)

	return created, nil
}
