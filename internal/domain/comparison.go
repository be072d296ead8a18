package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiffOperation is the kind of a line-level edit.
type DiffOperation string

const (
	DiffEqual  DiffOperation = "equal"
	DiffInsert DiffOperation = "insert"
	DiffDelete DiffOperation = "delete"
)

// DiffLine is one line of a structured diff. Changed lines carry a truncated
// content digest instead of their text. Line numbers are 1-based; 0 means the
// line does not exist on that side.
type DiffLine struct {
	Operation DiffOperation
	OldLine   int
	NewLine   int
	Digest    string
}

// DiffResult is a digest-only comparison of two versions.
type DiffResult struct {
	ComparisonID          uuid.UUID
	FromVersionID         uuid.UUID
	ToVersionID           uuid.UUID
	AddedLines            int
	RemovedLines          int
	UnchangedLines        int
	Lines                 []DiffLine
	Summary               string
	ContainsSensitiveData bool
}

// StoredComparison is the persisted summary of a DiffResult.
type StoredComparison struct {
	ID                    uuid.UUID
	FromVersionID         uuid.UUID
	ToVersionID           uuid.UUID
	Summary               string
	AddedLines            int
	RemovedLines          int
	UnchangedLines        int
	ContainsSensitiveData bool
	CreatedBy             uuid.UUID
	CreatedAt             time.Time
}

// UnifiedLine is a hunk line. Text is empty unless raw text was released.
type UnifiedLine struct {
	Operation DiffOperation
	OldLine   int
	NewLine   int
	Digest    string
	Text      string
}

// UnifiedHunk groups consecutive changes with surrounding context.
type UnifiedHunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []UnifiedLine
}

// UnifiedDiff is a hunk view of a comparison. Text holds the rendered
// unified diff only when TextIncluded is true.
type UnifiedDiff struct {
	FromVersionID         uuid.UUID
	ToVersionID           uuid.UUID
	Hunks                 []UnifiedHunk
	Text                  string
	TextIncluded          bool
	TextRedacted          bool
	ContainsSensitiveData bool
}

// SensitiveLocation is a match reported by a sensitivity scanner.
type SensitiveLocation struct {
	Line   int
	Column int
	Kind   string
}

// ScanResult is the output of a sensitivity scan.
type ScanResult struct {
	HasSensitiveData bool
	Locations        []SensitiveLocation
}
