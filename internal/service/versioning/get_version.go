package versioning

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// GetVersion returns a single version by id.
func (s *Service) GetVersion(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.VersionedEntity{}, domain.ErrUnauthorized
	}

	v, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return domain.VersionedEntity{}, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}

// GetCurrent returns the newest version of the chain that is not SUPERSEDED.
func (s *Service) GetCurrent(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.VersionedEntity{}, domain.ErrUnauthorized
	}

	if !kind.IsValid() {
		return domain.VersionedEntity{}, domain.NewValidationError("kind", "must be topic, artifact or manuscript")
	}

	v, err := s.versions.GetCurrent(ctx, kind, parentID)
	if err != nil {
		return domain.VersionedEntity{}, fmt.Errorf("get current %s: %w", kind, err)
	}
	return v, nil
}

// GetHistory returns one page of the chain, newest first.
func (s *Service) GetHistory(ctx context.Context, input HistoryInput) (HistoryPage, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return HistoryPage{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return HistoryPage{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.HistoryPageSize
	}

	versions, err := s.versions.History(ctx, input.Kind, input.ParentID, domain.HistoryPage{
		BeforeVersion: input.BeforeVersion,
		Limit:         limit + 1,
	})
	if err != nil {
		return HistoryPage{}, fmt.Errorf("get %s history: %w", input.Kind, err)
	}

	page := HistoryPage{Versions: versions}
	if len(versions) > limit {
		page.Versions = versions[:limit]
		page.HasMore = true
	}
	if n := len(page.Versions); n > 0 && page.HasMore {
		page.NextBeforeVersion = page.Versions[n-1].Version
	}
	return page, nil
}
