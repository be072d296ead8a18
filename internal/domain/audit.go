package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenesisHash is the previous_hash of the first entry in the ledger.
const GenesisHash = "GENESIS"

// EventType tags an audit entry. Values are upper snake case.
type EventType string

const (
	EventResourceCreated  EventType = "RESOURCE_CREATED"
	EventVersionsCompared EventType = "VERSIONS_COMPARED"

	EventTopicCreated EventType = "TOPIC_CREATED"
	EventTopicUpdated EventType = "TOPIC_UPDATED"
	EventTopicLocked  EventType = "TOPIC_LOCKED"

	EventArtifactVersionCreated EventType = "ARTIFACT_VERSION_CREATED"
	EventArtifactVersionUpdated EventType = "ARTIFACT_VERSION_UPDATED"
	EventArtifactVersionLocked  EventType = "ARTIFACT_VERSION_LOCKED"

	EventManuscriptVersionCreated EventType = "MANUSCRIPT_VERSION_CREATED"
	EventManuscriptVersionUpdated EventType = "MANUSCRIPT_VERSION_UPDATED"
	EventManuscriptVersionLocked  EventType = "MANUSCRIPT_VERSION_LOCKED"
)

func (e EventType) String() string { return string(e) }

// MaxEventTypeLength bounds EventType values.
const MaxEventTypeLength = 100

// IsValid reports whether e is non-empty upper snake case starting with a letter.
func (e EventType) IsValid() bool {
	if e == "" || len(e) > MaxEventTypeLength {
		return false
	}
	for i, r := range e {
		switch {
		case r >= 'A' && r <= 'Z':
		case i > 0 && (r == '_' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

// AuditEntry is one link of the tamper-evident ledger. Rows are append-only.
type AuditEntry struct {
	ID            uuid.UUID
	Seq           int64 // creation order, assigned by the store
	EventType     EventType
	UserID        *uuid.UUID
	Action        string
	ResourceType  string
	ResourceID    string
	Details       map[string]any
	CreatedAt     time.Time
	PreviousHash  string
	EntryHash     string
	HashAlgorithm string
}

// ChainBreak names why verification stopped.
type ChainBreak string

const (
	BreakPreviousHashMismatch ChainBreak = "previous_hash_mismatch"
	BreakEntryHashMismatch    ChainBreak = "entry_hash_mismatch"
	BreakUnsupportedAlgorithm ChainBreak = "unsupported_algorithm"
)

// ChainVerification is the outcome of replaying the ledger.
type ChainVerification struct {
	Valid            bool
	EntriesValidated int
	BrokenAt         *uuid.UUID
	Reason           ChainBreak
	LastHash         string
}

// AuditFilter narrows ListEntries. Zero values are ignored.
type AuditFilter struct {
	EventType    EventType
	ResourceType string
	ResourceID   string
	UserID       *uuid.UUID
	From         *time.Time
	To           *time.Time
	AfterSeq     int64
	Limit        int
}
