package versioning

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

// CreateVersionInput holds the parameters for starting a version chain.
type CreateVersionInput struct {
	Kind     domain.VersionKind
	ParentID uuid.UUID
	Content  map[string]any
}

// Validate checks all fields and collects all errors.
func (i CreateVersionInput) Validate() error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be topic, artifact or manuscript"})
	}
	if i.ParentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "required"})
	}
	errs = append(errs, validateContent(i.Content, true)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateVersionInput is a partial update. A nil value removes the field.
type UpdateVersionInput struct {
	VersionID uuid.UUID
	Content   map[string]any
}

// Validate checks all fields and collects all errors.
func (i UpdateVersionInput) Validate() error {
	var errs []domain.FieldError

	if i.VersionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "version_id", Message: "required"})
	}
	if i.Content == nil {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else {
		errs = append(errs, validateContent(i.Content, false)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HistoryInput pages a chain newest first. BeforeVersion 0 starts at the
// newest version; Limit 0 uses the configured page size.
type HistoryInput struct {
	Kind          domain.VersionKind
	ParentID      uuid.UUID
	BeforeVersion int
	Limit         int
}

// Validate checks all fields and collects all errors.
func (i HistoryInput) Validate() error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be topic, artifact or manuscript"})
	}
	if i.ParentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "required"})
	}
	if i.BeforeVersion < 0 {
		errs = append(errs, domain.FieldError{Field: "before", Message: "must be >= 0"})
	}
	if i.Limit < 0 || i.Limit > MaxHistoryPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HistoryPage is one page of a chain. NextBeforeVersion feeds the next
// request when HasMore is true.
type HistoryPage struct {
	Versions          []domain.VersionedEntity
	NextBeforeVersion int
	HasMore           bool
}

func validateContent(content map[string]any, required bool) []domain.FieldError {
	if content == nil {
		if required {
			return []domain.FieldError{{Field: "content", Message: "required"}}
		}
		return nil
	}
	if _, err := contenthash.Canonicalize(content); err != nil {
		return []domain.FieldError{{Field: "content", Message: "must be JSON-serializable"}}
	}
	if title, ok := content["title"]; ok && title != nil {
		if s, isString := title.(string); !isString || len(s) > 500 {
			return []domain.FieldError{{Field: "content.title", Message: "must be a string of max 500 characters"}}
		}
	}
	return nil
}
