package rest

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/internal/service/resource"
	"github.com/heartmarshall/research-ledger/internal/service/versioning"
)

var _ resourceService = &resourceServiceMock{}

type resourceServiceMock struct {
	CreateResourceFunc func(ctx context.Context, input resource.CreateResourceInput) (domain.Resource, error)
	GetResourceFunc    func(ctx context.Context, id uuid.UUID) (domain.Resource, error)

	calls struct {
		CreateResource []struct {
			Ctx   context.Context
			Input resource.CreateResourceInput
		}
		GetResource []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreateResource sync.RWMutex
	lockGetResource    sync.RWMutex
}

func (mock *resourceServiceMock) CreateResource(ctx context.Context, input resource.CreateResourceInput) (domain.Resource, error) {
	if mock.CreateResourceFunc == nil {
		panic("resourceServiceMock.CreateResourceFunc: method is nil but resourceService.CreateResource was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input resource.CreateResourceInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateResource.Lock()
	mock.calls.CreateResource = append(mock.calls.CreateResource, callInfo)
	mock.lockCreateResource.Unlock()
	return mock.CreateResourceFunc(ctx, input)
}

func (mock *resourceServiceMock) CreateResourceCalls() []struct {
	Ctx   context.Context
	Input resource.CreateResourceInput
} {
	mock.lockCreateResource.RLock()
	calls := mock.calls.CreateResource
	mock.lockCreateResource.RUnlock()
	return calls
}

func (mock *resourceServiceMock) GetResource(ctx context.Context, id uuid.UUID) (domain.Resource, error) {
	if mock.GetResourceFunc == nil {
		panic("resourceServiceMock.GetResourceFunc: method is nil but resourceService.GetResource was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetResource.Lock()
	mock.calls.GetResource = append(mock.calls.GetResource, callInfo)
	mock.lockGetResource.Unlock()
	return mock.GetResourceFunc(ctx, id)
}

func (mock *resourceServiceMock) GetResourceCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetResource.RLock()
	calls := mock.calls.GetResource
	mock.lockGetResource.RUnlock()
	return calls
}

var _ versionService = &versionServiceMock{}

type versionServiceMock struct {
	CreateVersionFunc func(ctx context.Context, input versioning.CreateVersionInput) (domain.VersionedEntity, error)
	UpdateVersionFunc func(ctx context.Context, input versioning.UpdateVersionInput) (domain.VersionedEntity, error)
	LockVersionFunc   func(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error)
	GetVersionFunc    func(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error)
	GetCurrentFunc    func(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error)
	GetHistoryFunc    func(ctx context.Context, input versioning.HistoryInput) (versioning.HistoryPage, error)

	calls struct {
		CreateVersion []struct {
			Ctx   context.Context
			Input versioning.CreateVersionInput
		}
		UpdateVersion []struct {
			Ctx   context.Context
			Input versioning.UpdateVersionInput
		}
		LockVersion []struct {
			Ctx       context.Context
			VersionID uuid.UUID
		}
		GetVersion []struct {
			Ctx       context.Context
			VersionID uuid.UUID
		}
		GetCurrent []struct {
			Ctx      context.Context
			Kind     domain.VersionKind
			ParentID uuid.UUID
		}
		GetHistory []struct {
			Ctx   context.Context
			Input versioning.HistoryInput
		}
	}
	lockCreateVersion sync.RWMutex
	lockUpdateVersion sync.RWMutex
	lockLockVersion   sync.RWMutex
	lockGetVersion    sync.RWMutex
	lockGetCurrent    sync.RWMutex
	lockGetHistory    sync.RWMutex
}

func (mock *versionServiceMock) CreateVersion(ctx context.Context, input versioning.CreateVersionInput) (domain.VersionedEntity, error) {
	if mock.CreateVersionFunc == nil {
		panic("versionServiceMock.CreateVersionFunc: method is nil but versionService.CreateVersion was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input versioning.CreateVersionInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateVersion.Lock()
	mock.calls.CreateVersion = append(mock.calls.CreateVersion, callInfo)
	mock.lockCreateVersion.Unlock()
	return mock.CreateVersionFunc(ctx, input)
}

func (mock *versionServiceMock) CreateVersionCalls() []struct {
	Ctx   context.Context
	Input versioning.CreateVersionInput
} {
	mock.lockCreateVersion.RLock()
	calls := mock.calls.CreateVersion
	mock.lockCreateVersion.RUnlock()
	return calls
}

func (mock *versionServiceMock) UpdateVersion(ctx context.Context, input versioning.UpdateVersionInput) (domain.VersionedEntity, error) {
	if mock.UpdateVersionFunc == nil {
		panic("versionServiceMock.UpdateVersionFunc: method is nil but versionService.UpdateVersion was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input versioning.UpdateVersionInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateVersion.Lock()
	mock.calls.UpdateVersion = append(mock.calls.UpdateVersion, callInfo)
	mock.lockUpdateVersion.Unlock()
	return mock.UpdateVersionFunc(ctx, input)
}

func (mock *versionServiceMock) UpdateVersionCalls() []struct {
	Ctx   context.Context
	Input versioning.UpdateVersionInput
} {
	mock.lockUpdateVersion.RLock()
	calls := mock.calls.UpdateVersion
	mock.lockUpdateVersion.RUnlock()
	return calls
}

func (mock *versionServiceMock) LockVersion(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error) {
	if mock.LockVersionFunc == nil {
		panic("versionServiceMock.LockVersionFunc: method is nil but versionService.LockVersion was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		VersionID uuid.UUID
	}{Ctx: ctx, VersionID: versionID}
	mock.lockLockVersion.Lock()
	mock.calls.LockVersion = append(mock.calls.LockVersion, callInfo)
	mock.lockLockVersion.Unlock()
	return mock.LockVersionFunc(ctx, versionID)
}

func (mock *versionServiceMock) LockVersionCalls() []struct {
	Ctx       context.Context
	VersionID uuid.UUID
} {
	mock.lockLockVersion.RLock()
	calls := mock.calls.LockVersion
	mock.lockLockVersion.RUnlock()
	return calls
}

func (mock *versionServiceMock) GetVersion(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error) {
	if mock.GetVersionFunc == nil {
		panic("versionServiceMock.GetVersionFunc: method is nil but versionService.GetVersion was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		VersionID uuid.UUID
	}{Ctx: ctx, VersionID: versionID}
	mock.lockGetVersion.Lock()
	mock.calls.GetVersion = append(mock.calls.GetVersion, callInfo)
	mock.lockGetVersion.Unlock()
	return mock.GetVersionFunc(ctx, versionID)
}

func (mock *versionServiceMock) GetVersionCalls() []struct {
	Ctx       context.Context
	VersionID uuid.UUID
} {
	mock.lockGetVersion.RLock()
	calls := mock.calls.GetVersion
	mock.lockGetVersion.RUnlock()
	return calls
}

func (mock *versionServiceMock) GetCurrent(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error) {
	if mock.GetCurrentFunc == nil {
		panic("versionServiceMock.GetCurrentFunc: method is nil but versionService.GetCurrent was just called")
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

func (mock *versionServiceMock) GetCurrentCalls() []struct {
	Ctx      context.Context
	Kind     domain.VersionKind
	ParentID uuid.UUID
} {
	mock.lockGetCurrent.RLock()
	calls := mock.calls.GetCurrent
	mock.lockGetCurrent.RUnlock()
	return calls
}

func (mock *versionServiceMock) GetHistory(ctx context.Context, input versioning.HistoryInput) (versioning.HistoryPage, error) {
	if mock.GetHistoryFunc == nil {
		panic("versionServiceMock.GetHistoryFunc: method is nil but versionService.GetHistory was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input versioning.HistoryInput
	}{Ctx: ctx, Input: input}
	mock.lockGetHistory.Lock()
	mock.calls.GetHistory = append(mock.calls.GetHistory, callInfo)
	mock.lockGetHistory.Unlock()
	return mock.GetHistoryFunc(ctx, input)
}

func (mock *versionServiceMock) GetHistoryCalls() []struct {
	Ctx   context.Context
	Input versioning.HistoryInput
} {
	mock.lockGetHistory.RLock()
	calls := mock.calls.GetHistory
	mock.lockGetHistory.RUnlock()
	return calls
}

var _ comparisonService = &comparisonServiceMock{}

type comparisonServiceMock struct {
	ComputeDiffFunc     func(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (domain.DiffResult, error)
	GetUnifiedDiffFunc  func(ctx context.Context, fromID uuid.UUID, toID uuid.UUID, includeText bool) (domain.UnifiedDiff, error)
	ListComparisonsFunc func(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error)

	calls struct {
		ComputeDiff []struct {
			Ctx    context.Context
			FromID uuid.UUID
			ToID   uuid.UUID
		}
		GetUnifiedDiff []struct {
			Ctx         context.Context
			FromID      uuid.UUID
			ToID        uuid.UUID
			IncludeText bool
		}
		ListComparisons []struct {
			Ctx       context.Context
			VersionID uuid.UUID
			Limit     int
		}
	}
	lockComputeDiff     sync.RWMutex
	lockGetUnifiedDiff  sync.RWMutex
	lockListComparisons sync.RWMutex
}

func (mock *comparisonServiceMock) ComputeDiff(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (domain.DiffResult, error) {
	if mock.ComputeDiffFunc == nil {
		panic("comparisonServiceMock.ComputeDiffFunc: method is nil but comparisonService.ComputeDiff was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FromID uuid.UUID
		ToID   uuid.UUID
	}{Ctx: ctx, FromID: fromID, ToID: toID}
	mock.lockComputeDiff.Lock()
	mock.calls.ComputeDiff = append(mock.calls.ComputeDiff, callInfo)
	mock.lockComputeDiff.Unlock()
	return mock.ComputeDiffFunc(ctx, fromID, toID)
}

func (mock *comparisonServiceMock) ComputeDiffCalls() []struct {
	Ctx    context.Context
	FromID uuid.UUID
	ToID   uuid.UUID
} {
	mock.lockComputeDiff.RLock()
	calls := mock.calls.ComputeDiff
	mock.lockComputeDiff.RUnlock()
	return calls
}

func (mock *comparisonServiceMock) GetUnifiedDiff(ctx context.Context, fromID uuid.UUID, toID uuid.UUID, includeText bool) (domain.UnifiedDiff, error) {
	if mock.GetUnifiedDiffFunc == nil {
		panic("comparisonServiceMock.GetUnifiedDiffFunc: method is nil but comparisonService.GetUnifiedDiff was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		FromID      uuid.UUID
		ToID        uuid.UUID
		IncludeText bool
	}{Ctx: ctx, FromID: fromID, ToID: toID, IncludeText: includeText}
	mock.lockGetUnifiedDiff.Lock()
	mock.calls.GetUnifiedDiff = append(mock.calls.GetUnifiedDiff, callInfo)
	mock.lockGetUnifiedDiff.Unlock()
	return mock.GetUnifiedDiffFunc(ctx, fromID, toID, includeText)
}

func (mock *comparisonServiceMock) GetUnifiedDiffCalls() []struct {
	Ctx         context.Context
	FromID      uuid.UUID
	ToID        uuid.UUID
	IncludeText bool
} {
	mock.lockGetUnifiedDiff.RLock()
	calls := mock.calls.GetUnifiedDiff
	mock.lockGetUnifiedDiff.RUnlock()
	return calls
}

func (mock *comparisonServiceMock) ListComparisons(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error) {
	if mock.ListComparisonsFunc == nil {
		panic("comparisonServiceMock.ListComparisonsFunc: method is nil but comparisonService.ListComparisons was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		VersionID uuid.UUID
		Limit     int
	}{Ctx: ctx, VersionID: versionID, Limit: limit}
	mock.lockListComparisons.Lock()
	mock.calls.ListComparisons = append(mock.calls.ListComparisons, callInfo)
	mock.lockListComparisons.Unlock()
	return mock.ListComparisonsFunc(ctx, versionID, limit)
}

func (mock *comparisonServiceMock) ListComparisonsCalls() []struct {
	Ctx       context.Context
	VersionID uuid.UUID
	Limit     int
} {
	mock.lockListComparisons.RLock()
	calls := mock.calls.ListComparisons
	mock.lockListComparisons.RUnlock()
	return calls
}

var _ ledgerService = &ledgerServiceMock{}

type ledgerServiceMock struct {
	AppendFunc      func(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error)
	GetEntryFunc    func(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error)
	ListEntriesFunc func(ctx context.Context, input ledger.ListInput) (ledger.EntryPage, error)
	LastHashFunc    func(ctx context.Context) (string, error)
	VerifyChainFunc func(ctx context.Context) (domain.ChainVerification, error)
	ExportFunc      func(ctx context.Context, w io.Writer) (int, error)

	calls struct {
		Append []struct {
			Ctx   context.Context
			Input ledger.AppendInput
		}
		GetEntry []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListEntries []struct {
			Ctx   context.Context
			Input ledger.ListInput
		}
		LastHash []struct {
			Ctx context.Context
		}
		VerifyChain []struct {
			Ctx context.Context
		}
		Export []struct {
			Ctx context.Context
			W   io.Writer
		}
	}
	lockAppend      sync.RWMutex
	lockGetEntry    sync.RWMutex
	lockListEntries sync.RWMutex
	lockLastHash    sync.RWMutex
	lockVerifyChain sync.RWMutex
	lockExport      sync.RWMutex
}

func (mock *ledgerServiceMock) Append(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error) {
	if mock.AppendFunc == nil {
		panic("ledgerServiceMock.AppendFunc: method is nil but ledgerService.Append was just called")
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

func (mock *ledgerServiceMock) AppendCalls() []struct {
	Ctx   context.Context
	Input ledger.AppendInput
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) GetEntry(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error) {
	if mock.GetEntryFunc == nil {
		panic("ledgerServiceMock.GetEntryFunc: method is nil but ledgerService.GetEntry was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetEntry.Lock()
	mock.calls.GetEntry = append(mock.calls.GetEntry, callInfo)
	mock.lockGetEntry.Unlock()
	return mock.GetEntryFunc(ctx, id)
}

func (mock *ledgerServiceMock) GetEntryCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetEntry.RLock()
	calls := mock.calls.GetEntry
	mock.lockGetEntry.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) ListEntries(ctx context.Context, input ledger.ListInput) (ledger.EntryPage, error) {
	if mock.ListEntriesFunc == nil {
		panic("ledgerServiceMock.ListEntriesFunc: method is nil but ledgerService.ListEntries was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ledger.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockListEntries.Lock()
	mock.calls.ListEntries = append(mock.calls.ListEntries, callInfo)
	mock.lockListEntries.Unlock()
	return mock.ListEntriesFunc(ctx, input)
}

func (mock *ledgerServiceMock) ListEntriesCalls() []struct {
	Ctx   context.Context
	Input ledger.ListInput
} {
	mock.lockListEntries.RLock()
	calls := mock.calls.ListEntries
	mock.lockListEntries.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) LastHash(ctx context.Context) (string, error) {
	if mock.LastHashFunc == nil {
		panic("ledgerServiceMock.LastHashFunc: method is nil but ledgerService.LastHash was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLastHash.Lock()
	mock.calls.LastHash = append(mock.calls.LastHash, callInfo)
	mock.lockLastHash.Unlock()
	return mock.LastHashFunc(ctx)
}

func (mock *ledgerServiceMock) LastHashCalls() []struct {
	Ctx context.Context
} {
	mock.lockLastHash.RLock()
	calls := mock.calls.LastHash
	mock.lockLastHash.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) VerifyChain(ctx context.Context) (domain.ChainVerification, error) {
	if mock.VerifyChainFunc == nil {
		panic("ledgerServiceMock.VerifyChainFunc: method is nil but ledgerService.VerifyChain was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockVerifyChain.Lock()
	mock.calls.VerifyChain = append(mock.calls.VerifyChain, callInfo)
	mock.lockVerifyChain.Unlock()
	return mock.VerifyChainFunc(ctx)
}

func (mock *ledgerServiceMock) VerifyChainCalls() []struct {
	Ctx context.Context
} {
	mock.lockVerifyChain.RLock()
	calls := mock.calls.VerifyChain
	mock.lockVerifyChain.RUnlock()
	return calls
}

func (mock *ledgerServiceMock) Export(ctx context.Context, w io.Writer) (int, error) {
	if mock.ExportFunc == nil {
		panic("ledgerServiceMock.ExportFunc: method is nil but ledgerService.Export was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   io.Writer
	}{Ctx: ctx, W: w}
	mock.lockExport.Lock()
	mock.calls.Export = append(mock.calls.Export, callInfo)
	mock.lockExport.Unlock()
	return mock.ExportFunc(ctx, w)
}

func (mock *ledgerServiceMock) ExportCalls() []struct {
	Ctx context.Context
	W   io.Writer
} {
	mock.lockExport.RLock()
	calls := mock.calls.Export
	mock.lockExport.RUnlock()
	return calls
}
