package resource

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

var _ resourceRepo = &resourceRepoMock{}

type resourceRepoMock struct {
	CreateFunc  func(ctx context.Context, res domain.Resource) (domain.Resource, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Resource, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Res domain.Resource
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
}

func (mock *resourceRepoMock) Create(ctx context.Context, res domain.Resource) (domain.Resource, error) {
	if mock.CreateFunc == nil {
		panic("resourceRepoMock.CreateFunc: method is nil but resourceRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Res domain.Resource
	}{Ctx: ctx, Res: res}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, res)
}

func (mock *resourceRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Res domain.Resource
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
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

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	AppendFunc func(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error)

	calls struct {
		Append []struct {
			Ctx   context.Context
			Input ledger.AppendInput
		}
	}
	lockAppend sync.RWMutex
}

func (mock *auditLoggerMock) Append(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error) {
	if mock.AppendFunc == nil {
		panic("auditLoggerMock.AppendFunc: method is nil but auditLogger.Append was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ledger.AppendInput
	}{Ctx: ctx, Input: input}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, input)
}

func (mock *auditLoggerMock) AppendCalls() []struct {
	Ctx   context.Context
	Input ledger.AppendInput
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
