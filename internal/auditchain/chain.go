// Package auditchain computes and verifies the ledger hash chain.
// It has no storage dependency so the same code checks a live ledger and an
// offline export.
package auditchain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

// TimestampPrecision is the resolution kept for created_at. PostgreSQL
// timestamptz stores microseconds, so anything finer would not survive a
// round trip and the recomputed digest would differ.
const TimestampPrecision = time.Microsecond

// NormalizeTime returns t in UTC truncated to TimestampPrecision.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

// hashInput is the exact field set covered by entry_hash.
type hashInput struct {
	EventType    string         `json:"eventType"`
	UserID       *string        `json:"userId"`
	Action       string         `json:"action"`
	Details      map[string]any `json:"details"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	CreatedAt    string         `json:"createdAt"`
	PreviousHash string         `json:"previousHash"`
}

func newHashInput(e domain.AuditEntry) hashInput {
	var userID *string
	if e.UserID != nil && *e.UserID != uuid.Nil {
		s := e.UserID.String()
		userID = &s
	}
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	return hashInput{
		EventType:    e.EventType.String(),
		UserID:       userID,
		Action:       e.Action,
		Details:      details,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		CreatedAt:    NormalizeTime(e.CreatedAt).Format(time.RFC3339Nano),
		PreviousHash: e.PreviousHash,
	}
}

// ComputeEntryHash returns the digest of e using e.HashAlgorithm.
// EntryHash, ID and Seq are not part of the digest.
func ComputeEntryHash(e domain.AuditEntry) (string, error) {
	alg, err := contenthash.ParseAlgorithm(e.HashAlgorithm)
	if err != nil {
		return "", err
	}
	digest, err := contenthash.Sum(alg, newHashInput(e))
	if err != nil {
		return "", fmt.Errorf("audit entry %s: %w", e.ID, err)
	}
	return digest, nil
}

// Seal links e to previousHash and fills EntryHash. CreatedAt is normalized
// first so the sealed value equals what the store will return.
func Seal(e domain.AuditEntry, previousHash string) (domain.AuditEntry, error) {
	if previousHash == "" {
		previousHash = domain.GenesisHash
	}
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.CreatedAt = NormalizeTime(e.CreatedAt)
	e.PreviousHash = previousHash

	digest, err := ComputeEntryHash(e)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	e.EntryHash = digest
	return e, nil
}
