package auditchain

import (
	"errors"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

// Verifier replays entries in creation order. Feed entries with Check until
// it returns false or the input is exhausted, then read Result.
//
// For every entry: previous_hash must equal the expected link (GENESIS for
// the first entry), then the recomputed digest must equal entry_hash. The
// first failure stops the replay.
type Verifier struct {
	expectedPrevious string
	validated        int
	broken           *domain.AuditEntry
	reason           domain.ChainBreak
}

// NewVerifier returns a Verifier expecting the chain to start at GENESIS.
func NewVerifier() *Verifier {
	return &Verifier{expectedPrevious: domain.GenesisHash}
}

// Check validates the next entry. It returns false once the chain is broken;
// further calls are ignored.
func (v *Verifier) Check(e domain.AuditEntry) bool {
	if v.broken != nil {
		return false
	}

	if e.PreviousHash != v.expectedPrevious {
		v.fail(e, domain.BreakPreviousHashMismatch)
		return false
	}

	recomputed, err := ComputeEntryHash(e)
	switch {
	case errors.Is(err, domain.ErrUnsupportedAlgorithm):
		v.fail(e, domain.BreakUnsupportedAlgorithm)
		return false
	case err != nil, recomputed != e.EntryHash:
		v.fail(e, domain.BreakEntryHashMismatch)
		return false
	}

	v.expectedPrevious = e.EntryHash
	v.validated++
	return true
}

func (v *Verifier) fail(e domain.AuditEntry, reason domain.ChainBreak) {
	v.broken = &e
	v.reason = reason
}

// Result reports the outcome so far. An empty replay is valid with zero
// entries validated.
func (v *Verifier) Result() domain.ChainVerification {
	res := domain.ChainVerification{
		Valid:            v.broken == nil,
		EntriesValidated: v.validated,
		LastHash:         v.expectedPrevious,
	}
	if v.broken != nil {
		id := v.broken.ID
		res.BrokenAt = &id
		res.Reason = v.reason
	}
	return res
}

// VerifyEntries replays a slice. Convenience for tests and small exports.
func VerifyEntries(entries []domain.AuditEntry) domain.ChainVerification {
	v := NewVerifier()
	for _, e := range entries {
		if !v.Check(e) {
			break
		}
	}
	return v.Result()
}
