package comparison

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// ListComparisons returns stored comparisons that involve versionID on
// either side, newest first. limit 0 means DefaultListLimit.
func (s *Service) ListComparisons(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if versionID == uuid.Nil {
		return nil, domain.NewValidationError("version_id", "required")
	}
	if limit < 0 || limit > MaxListLimit {
		return nil, domain.NewValidationError("limit", "must be between 0 and 200")
	}
	if limit == 0 {
		limit = DefaultListLimit
	}

	out, err := s.comparisons.ListByVersion(ctx, versionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	return out, nil
}
