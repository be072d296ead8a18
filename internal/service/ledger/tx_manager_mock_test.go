package ledger

import (
	"context"
	"sync"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc       func(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSnapshotFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	InTxFunc          func(ctx context.Context) bool

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
		RunInSnapshot []struct {
			Ctx context.Context
		}
		InTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx       sync.RWMutex
	lockRunInSnapshot sync.RWMutex
	lockInTx          sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{ Ctx context.Context }{Ctx: ctx})
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

func (mock *txManagerMock) RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInSnapshotFunc == nil {
		panic("txManagerMock.RunInSnapshotFunc: method is nil but txManager.RunInSnapshot was just called")
	}
	mock.lockRunInSnapshot.Lock()
	mock.calls.RunInSnapshot = append(mock.calls.RunInSnapshot, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockRunInSnapshot.Unlock()
	return mock.RunInSnapshotFunc(ctx, fn)
}

func (mock *txManagerMock) RunInSnapshotCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInSnapshot.RLock()
	calls := mock.calls.RunInSnapshot
	mock.lockRunInSnapshot.RUnlock()
	return calls
}

func (mock *txManagerMock) InTx(ctx context.Context) bool {
	if mock.InTxFunc == nil {
		panic("txManagerMock.InTxFunc: method is nil but txManager.InTx was just called")
	}
	mock.lockInTx.Lock()
	mock.calls.InTx = append(mock.calls.InTx, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockInTx.Unlock()
	return mock.InTxFunc(ctx)
}

func (mock *txManagerMock) InTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockInTx.RLock()
	calls := mock.calls.InTx
	mock.lockInTx.RUnlock()
	return calls
}
