package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VersionStatus is the lifecycle state of a single version row.
type VersionStatus string

const (
	VersionStatusDraft      VersionStatus = "DRAFT"
	VersionStatusLocked     VersionStatus = "LOCKED"
	VersionStatusSuperseded VersionStatus = "SUPERSEDED"
)

func (s VersionStatus) String() string { return string(s) }

func (s VersionStatus) IsValid() bool {
	switch s {
	case VersionStatusDraft, VersionStatusLocked, VersionStatusSuperseded:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s VersionStatus) IsTerminal() bool {
	return s == VersionStatusLocked || s == VersionStatusSuperseded
}

// ValidateTransition is the single gate for version status changes.
// Only DRAFT->LOCKED and DRAFT->SUPERSEDED are allowed; LOCKED and
// SUPERSEDED are absorbing.
func ValidateTransition(from, to VersionStatus) error {
	if !from.IsValid() || !to.IsValid() {
		return fmt.Errorf("transition %s -> %s: unknown status: %w", from, to, ErrInvalidState)
	}
	if from == VersionStatusDraft && (to == VersionStatusLocked || to == VersionStatusSuperseded) {
		return nil
	}
	return fmt.Errorf("transition %s -> %s: %w", from, to, ErrInvalidState)
}

// VersionKind identifies which versioned entity a chain belongs to.
type VersionKind string

const (
	VersionKindTopic      VersionKind = "topic"
	VersionKindArtifact   VersionKind = "artifact"
	VersionKindManuscript VersionKind = "manuscript"
)

func (k VersionKind) String() string { return string(k) }

func (k VersionKind) IsValid() bool {
	_, ok := versionSchemas[k]
	return ok
}

// VersionSchema describes how a kind is hashed, diffed and audited.
type VersionSchema struct {
	ParentKind     ResourceKind
	IdentityFields []string
	TextField      string
	CreatedEvent   EventType
	UpdatedEvent   EventType
	LockedEvent    EventType
}

var versionSchemas = map[VersionKind]VersionSchema{
	VersionKindTopic: {
		ParentKind:     ResourceKindResearch,
		IdentityFields: []string{"title", "description", "scope", "keywords"},
		TextField:      "description",
		CreatedEvent:   EventTopicCreated,
		UpdatedEvent:   EventTopicUpdated,
		LockedEvent:    EventTopicLocked,
	},
	VersionKindArtifact: {
		ParentKind:     ResourceKindArtifact,
		IdentityFields: []string{"title", "format", "body"},
		TextField:      "body",
		CreatedEvent:   EventArtifactVersionCreated,
		UpdatedEvent:   EventArtifactVersionUpdated,
		LockedEvent:    EventArtifactVersionLocked,
	},
	VersionKindManuscript: {
		ParentKind:     ResourceKindManuscript,
		IdentityFields: []string{"title", "abstract", "body"},
		TextField:      "body",
		CreatedEvent:   EventManuscriptVersionCreated,
		UpdatedEvent:   EventManuscriptVersionUpdated,
		LockedEvent:    EventManuscriptVersionLocked,
	},
}

// Schema returns the schema for k. ok is false for unknown kinds.
func (k VersionKind) Schema() (VersionSchema, bool) {
	s, ok := versionSchemas[k]
	return s, ok
}

// IdentityContent projects content onto the schema's identity fields.
// Absent fields are left absent; the canonical encoder treats absent and
// null the same way.
func (s VersionSchema) IdentityContent(content map[string]any) map[string]any {
	out := make(map[string]any, len(s.IdentityFields))
	for _, f := range s.IdentityFields {
		if v, ok := content[f]; ok && v != nil {
			out[f] = v
		}
	}
	return out
}

// VersionedEntity is one immutable row of a version chain. Only Status,
// LockedAt and LockedBy ever change after insert.
type VersionedEntity struct {
	ID                uuid.UUID
	Kind              VersionKind
	ParentResourceID  uuid.UUID
	Version           int
	Content           map[string]any
	VersionHash       string
	HashAlgorithm     string
	PreviousVersionID *uuid.UUID
	Status            VersionStatus
	CreatedBy         uuid.UUID
	CreatedAt         time.Time
	LockedAt          *time.Time
	LockedBy          *uuid.UUID
}

// IsCurrentCandidate reports whether v can be the current version of its chain.
func (v VersionedEntity) IsCurrentCandidate() bool {
	return v.Status != VersionStatusSuperseded
}

// HistoryPage requests a window of a version chain, newest first.
// BeforeVersion = 0 starts from the newest row.
type HistoryPage struct {
	BeforeVersion int
	Limit         int
}

// MergeContent applies a partial update over current. A nil value in patch
// removes the field. current is not modified.
func MergeContent(current, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(current)+len(patch))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}
