package versioning

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

var _ resourceRepo = &resourceRepoMock{}

type resourceRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Resource, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *resourceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Resource, error) {
	if mock.GetByIDFunc == nil {
		panic("resourceRepoMock.GetByIDFunc: method is nil but resourceRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *resourceRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
