package resource

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

const MaxTitleLength = 500

// CreateResourceInput holds parameters for creating a parent resource.
type CreateResourceInput struct {
	Kind  domain.ResourceKind
	Title string
}

func (i CreateResourceInput) Validate() error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be one of research, artifact, manuscript"})
	}

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
