package resource

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// GetResource returns a resource by id.
func (s *Service) GetResource(ctx context.Context, id uuid.UUID) (domain.Resource, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.Resource{}, domain.ErrUnauthorized
	}
	return s.resources.GetByID(ctx, id)
}
