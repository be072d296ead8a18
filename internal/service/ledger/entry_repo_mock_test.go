package ledger

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	LockLedgerFunc func(ctx context.Context, key int64) error
	InsertFunc     func(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	LastFunc       func(ctx context.Context) (domain.AuditEntry, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error)
	ListFunc       func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error)
	StreamFunc     func(ctx context.Context, fn func(domain.AuditEntry) bool) error

	calls struct {
		LockLedger []struct {
			Ctx context.Context
			Key int64
		}
		Insert []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		Last []struct {
			Ctx context.Context
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.AuditFilter
		}
		Stream []struct {
			Ctx context.Context
		}
	}
	lockLockLedger sync.RWMutex
	lockInsert     sync.RWMutex
	lockLast       sync.RWMutex
	lockGetByID    sync.RWMutex
	lockList       sync.RWMutex
	lockStream     sync.RWMutex
}

func (mock *entryRepoMock) LockLedger(ctx context.Context, key int64) error {
	if mock.LockLedgerFunc == nil {
		panic("entryRepoMock.LockLedgerFunc: method is nil but entryRepo.LockLedger was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key int64
	}{Ctx: ctx, Key: key}
	mock.lockLockLedger.Lock()
	mock.calls.LockLedger = append(mock.calls.LockLedger, callInfo)
	mock.lockLockLedger.Unlock()
	return mock.LockLedgerFunc(ctx, key)
}

func (mock *entryRepoMock) LockLedgerCalls() []struct {
	Ctx context.Context
	Key int64
} {
	mock.lockLockLedger.RLock()
	calls := mock.calls.LockLedger
	mock.lockLockLedger.RUnlock()
	return calls
}

func (mock *entryRepoMock) Insert(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	if mock.InsertFunc == nil {
		panic("entryRepoMock.InsertFunc: method is nil but entryRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, e)
}

func (mock *entryRepoMock) InsertCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *entryRepoMock) Last(ctx context.Context) (domain.AuditEntry, error) {
	if mock.LastFunc == nil {
		panic("entryRepoMock.LastFunc: method is nil but entryRepo.Last was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLast.Lock()
	mock.calls.Last = append(mock.calls.Last, callInfo)
	mock.lockLast.Unlock()
	return mock.LastFunc(ctx)
}

func (mock *entryRepoMock) LastCalls() []struct {
	Ctx context.Context
} {
	mock.lockLast.RLock()
	calls := mock.calls.Last
	mock.lockLast.RUnlock()
	return calls
}

func (mock *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
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

func (mock *entryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *entryRepoMock) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	if mock.ListFunc == nil {
		panic("entryRepoMock.ListFunc: method is nil but entryRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.AuditFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *entryRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.AuditFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *entryRepoMock) Stream(ctx context.Context, fn func(domain.AuditEntry) bool) error {
	if mock.StreamFunc == nil {
		panic("entryRepoMock.StreamFunc: method is nil but entryRepo.Stream was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStream.Lock()
	mock.calls.Stream = append(mock.calls.Stream, callInfo)
	mock.lockStream.Unlock()
	return mock.StreamFunc(ctx, fn)
}

func (mock *entryRepoMock) StreamCalls() []struct {
	Ctx context.Context
} {
	mock.lockStream.RLock()
	calls := mock.calls.Stream
	mock.lockStream.RUnlock()
	return calls
}
