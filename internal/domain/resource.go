package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceKind identifies a parent resource that owns version chains.
type ResourceKind string

const (
	ResourceKindResearch   ResourceKind = "research"
	ResourceKindArtifact   ResourceKind = "artifact"
	ResourceKindManuscript ResourceKind = "manuscript"
)

func (k ResourceKind) String() string { return string(k) }

func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceKindResearch, ResourceKindArtifact, ResourceKindManuscript:
		return true
	}
	return false
}

// Resource is a research project, artifact or manuscript.
type Resource struct {
	ID        uuid.UUID
	Kind      ResourceKind
	Title     string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}
