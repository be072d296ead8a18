package versioning

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

var _ versionRepo = &versionRepoMock{}

type versionRepoMock struct {
	CreateFunc              func(ctx context.Context, v domain.VersionedEntity) (domain.VersionedEntity, error)
	CompareAndSetStatusFunc func(ctx context.Context, id uuid.UUID, from domain.VersionStatus, to domain.VersionStatus, lockedBy *uuid.UUID, lockedAt *time.Time) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error)
	GetCurrentFunc          func(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error)
	ChainExistsFunc         func(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (bool, error)
	HistoryFunc             func(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID, page domain.HistoryPage) ([]domain.VersionedEntity, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			V   domain.VersionedEntity
		}
		CompareAndSetStatus []struct {
			Ctx      context.Context
			ID       uuid.UUID
			From     domain.VersionStatus
			To       domain.VersionStatus
			LockedBy *uuid.UUID
			LockedAt *time.Time
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetCurrent []struct {
			Ctx      context.Context
			Kind     domain.VersionKind
			ParentID uuid.UUID
		}
		ChainExists []struct {
			Ctx      context.Context
			Kind     domain.VersionKind
			ParentID uuid.UUID
		}
		History []struct {
			Ctx      context.Context
			Kind     domain.VersionKind
			ParentID uuid.UUID
			Page     domain.HistoryPage
		}
	}
	lockCreate              sync.RWMutex
	lockCompareAndSetStatus sync.RWMutex
	lockGetByID             sync.RWMutex
	lockGetCurrent          sync.RWMutex
	lockChainExists         sync.RWMutex
	lockHistory             sync.RWMutex
}

func (mock *versionRepoMock) Create(ctx context.Context, v domain.VersionedEntity) (domain.VersionedEntity, error) {
	if mock.CreateFunc == nil {
		panic("versionRepoMock.CreateFunc: method is nil but versionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		V   domain.VersionedEntity
	}{Ctx: ctx, V: v}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, v)
}

func (mock *versionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	V   domain.VersionedEntity
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *versionRepoMock) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from domain.VersionStatus, to domain.VersionStatus, lockedBy *uuid.UUID, lockedAt *time.Time) error {
	if mock.CompareAndSetStatusFunc == nil {
		panic("versionRepoMock.CompareAndSetStatusFunc: method is nil but versionRepo.CompareAndSetStatus was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		From     domain.VersionStatus
		To       domain.VersionStatus
		LockedBy *uuid.UUID
		LockedAt *time.Time
	}{Ctx: ctx, ID: id, From: from, To: to, LockedBy: lockedBy, LockedAt: lockedAt}
	mock.lockCompareAndSetStatus.Lock()
	mock.calls.CompareAndSetStatus = append(mock.calls.CompareAndSetStatus, callInfo)
	mock.lockCompareAndSetStatus.Unlock()
	return mock.CompareAndSetStatusFunc(ctx, id, from, to, lockedBy, lockedAt)
}

func (mock *versionRepoMock) CompareAndSetStatusCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	From     domain.VersionStatus
	To       domain.VersionStatus
	LockedBy *uuid.UUID
	LockedAt *time.Time
} {
	mock.lockCompareAndSetStatus.RLock()
	calls := mock.calls.CompareAndSetStatus
	mock.lockCompareAndSetStatus.RUnlock()
	return calls
}

func (mock *versionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error) {
	if mock.GetByIDFunc == nil {
		panic("versionRepoMock.GetByIDFunc: method is nil but versionRepo.GetByID was just called")
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

func (mock *versionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *versionRepoMock) GetCurrent(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error) {
	if mock.GetCurrentFunc == nil {
		panic("versionRepoMock.GetCurrentFunc: method is nil but versionRepo.GetCurrent was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.VersionKind
		ParentID uuid.UUID
	}{Ctx: ctx, Kind: kind, ParentID: parentID}
	mock.lockGetCurrent.Lock()
	mock.calls.GetCurrent = append(mock.calls.GetCurrent, callInfo)
	mock.lockGetCurrent.Unlock()
	return mock.GetCurrentFunc(ctx, kind, parentID)
}

func (mock *versionRepoMock) GetCurrentCalls() []struct {
	Ctx      context.Context
	Kind     domain.VersionKind
	ParentID uuid.UUID
} {
	mock.lockGetCurrent.RLock()
	calls := mock.calls.GetCurrent
	mock.lockGetCurrent.RUnlock()
	return calls
}

func (mock *versionRepoMock) ChainExists(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (bool, error) {
	if mock.ChainExistsFunc == nil {
		panic("versionRepoMock.ChainExistsFunc: method is nil but versionRepo.ChainExists was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.VersionKind
		ParentID uuid.UUID
	}{Ctx: ctx, Kind: kind, ParentID: parentID}
	mock.lockChainExists.Lock()
	mock.calls.ChainExists = append(mock.calls.ChainExists, callInfo)
	mock.lockChainExists.Unlock()
	return mock.ChainExistsFunc(ctx, kind, parentID)
}

func (mock *versionRepoMock) ChainExistsCalls() []struct {
	Ctx      context.Context
	Kind     domain.VersionKind
	ParentID uuid.UUID
} {
	mock.lockChainExists.RLock()
	calls := mock.calls.ChainExists
	mock.lockChainExists.RUnlock()
	return calls
}

func (mock *versionRepoMock) History(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID, page domain.HistoryPage) ([]domain.VersionedEntity, error) {
	if mock.HistoryFunc == nil {
		panic("versionRepoMock.HistoryFunc: method is nil but versionRepo.History was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.VersionKind
		ParentID uuid.UUID
		Page     domain.HistoryPage
	}{Ctx: ctx, Kind: kind, ParentID: parentID, Page: page}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, kind, parentID, page)
}

func (mock *versionRepoMock) HistoryCalls() []struct {
	Ctx      context.Context
	Kind     domain.VersionKind
	ParentID uuid.UUID
	Page     domain.HistoryPage
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}
