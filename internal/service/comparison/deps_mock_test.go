package comparison

import (
	"context"
	"sync"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

var _ sensitivityScanner = &sensitivityScannerMock{}

type sensitivityScannerMock struct {
	ScanFunc func(ctx context.Context, text string) (domain.ScanResult, error)

	calls struct {
		Scan []struct {
			Ctx  context.Context
			Text string
		}
	}
	lockScan sync.RWMutex
}

func (mock *sensitivityScannerMock) Scan(ctx context.Context, text string) (domain.ScanResult, error) {
	if mock.ScanFunc == nil {
		panic("sensitivityScannerMock.ScanFunc: method is nil but sensitivityScanner.Scan was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockScan.Lock()
	mock.calls.Scan = append(mock.calls.Scan, callInfo)
	mock.lockScan.Unlock()
	return mock.ScanFunc(ctx, text)
}

func (mock *sensitivityScannerMock) ScanCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockScan.RLock()
	calls := mock.calls.Scan
	mock.lockScan.RUnlock()
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
