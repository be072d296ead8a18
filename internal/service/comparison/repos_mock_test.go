package comparison

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

var _ versionReader = &versionReaderMock{}

type versionReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *versionReaderMock) GetByID(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error) {
	if mock.GetByIDFunc == nil {
		panic("versionReaderMock.GetByIDFunc: method is nil but versionReader.GetByID was just called")
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

func (mock *versionReaderMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ comparisonRepo = &comparisonRepoMock{}

type comparisonRepoMock struct {
	CreateFunc        func(ctx context.Context, c domain.StoredComparison) (domain.StoredComparison, error)
	ListByVersionFunc func(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   domain.StoredComparison
		}
		ListByVersion []struct {
			Ctx       context.Context
			VersionID uuid.UUID
			Limit     int
		}
	}
	lockCreate        sync.RWMutex
	lockListByVersion sync.RWMutex
}

func (mock *comparisonRepoMock) Create(ctx context.Context, c domain.StoredComparison) (domain.StoredComparison, error) {
	if mock.CreateFunc == nil {
		panic("comparisonRepoMock.CreateFunc: method is nil but comparisonRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.StoredComparison
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *comparisonRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   domain.StoredComparison
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *comparisonRepoMock) ListByVersion(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error) {
	if mock.ListByVersionFunc == nil {
		panic("comparisonRepoMock.ListByVersionFunc: method is nil but comparisonRepo.ListByVersion was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		VersionID uuid.UUID
		Limit     int
	}{Ctx: ctx, VersionID: versionID, Limit: limit}
	mock.lockListByVersion.Lock()
	mock.calls.ListByVersion = append(mock.calls.ListByVersion, callInfo)
	mock.lockListByVersion.Unlock()
	return mock.ListByVersionFunc(ctx, versionID, limit)
}

func (mock *comparisonRepoMock) ListByVersionCalls() []struct {
	Ctx       context.Context
	VersionID uuid.UUID
	Limit     int
} {
	mock.lockListByVersion.RLock()
	calls := mock.calls.ListByVersion
	mock.lockListByVersion.RUnlock()
	return calls
}
