package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

// AppendInput describes one event to record. UserID is nil for system events.
type AppendInput struct {
	EventType    domain.EventType
	UserID       *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
}

// Validate checks all fields and collects all errors.
func (i AppendInput) Validate() error {
	var errs []domain.FieldError

	if !i.EventType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "event_type", Message: "must be upper snake case, max 100 characters"})
	}

	action := strings.TrimSpace(i.Action)
	if action == "" {
		errs = append(errs, domain.FieldError{Field: "action", Message: "required"})
	}
	if len(action) > 100 {
		errs = append(errs, domain.FieldError{Field: "action", Message: "max 100 characters"})
	}

	if strings.TrimSpace(i.ResourceType) == "" {
		errs = append(errs, domain.FieldError{Field: "resource_type", Message: "required"})
	}
	if strings.TrimSpace(i.ResourceID) == "" {
		errs = append(errs, domain.FieldError{Field: "resource_id", Message: "required"})
	}

	if i.Details != nil {
		if _, err := contenthash.Canonicalize(i.Details); err != nil {
			errs = append(errs, domain.FieldError{Field: "details", Message: "must be JSON-serializable"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput filters and pages ListEntries. Limit 0 means DefaultPageSize.
type ListInput struct {
	EventType    domain.EventType
	ResourceType string
	ResourceID   string
	UserID       *uuid.UUID
	From         *time.Time
	To           *time.Time
	AfterSeq     int64
	Limit        int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.EventType != "" && !i.EventType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "event_type", Message: "must be upper snake case"})
	}
	if i.Limit < 0 || i.Limit > MaxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if i.AfterSeq < 0 {
		errs = append(errs, domain.FieldError{Field: "after", Message: "must be >= 0"})
	}
	if i.From != nil && i.To != nil && !i.From.Before(*i.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must be before to"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// EntryPage is one page of ListEntries. NextAfterSeq feeds the next request
// when HasMore is true.
type EntryPage struct {
	Entries      []domain.AuditEntry
	NextAfterSeq int64
	HasMore      bool
}
