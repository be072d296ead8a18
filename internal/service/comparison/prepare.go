package comparison

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/linediff"
)

// pair is two loaded versions with their diff text and edit script.
type pair struct {
	from, to         domain.VersionedEntity
	fromText, toText string
	ops              []linediff.Op
	scan             domain.ScanResult
}

func validateIDs(fromID, toID uuid.UUID) error {
	var errs []domain.FieldError
	if fromID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "from_version_id", Message: "required"})
	}
	if toID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "to_version_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// prepare loads both versions concurrently, checks they belong to the same
// chain, diffs their text and scans both sides.
func (s *Service) prepare(ctx context.Context, fromID, toID uuid.UUID) (pair, error) {
	if err := validateIDs(fromID, toID); err != nil {
		return pair{}, err
	}

	var p pair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.versions.GetByID(gctx, fromID)
		if err != nil {
			return fmt.Errorf("get from version: %w", err)
		}
		p.from = v
		return nil
	})
	g.Go(func() error {
		v, err := s.versions.GetByID(gctx, toID)
		if err != nil {
			return fmt.Errorf("get to version: %w", err)
		}
		p.to = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return pair{}, err
	}

	if p.from.Kind != p.to.Kind || p.from.ParentResourceID != p.to.ParentResourceID {
		return pair{}, domain.NewValidationError("to_version_id", "must belong to the same version chain as from_version_id")
	}

	var err error
	if p.fromText, err = diffText(p.from); err != nil {
		return pair{}, err
	}
	if p.toText, err = diffText(p.to); err != nil {
		return pair{}, err
	}

	fromLines := linediff.SplitLines(p.fromText)
	toLines := linediff.SplitLines(p.toText)
	if len(fromLines) > s.cfg.MaxLines || len(toLines) > s.cfg.MaxLines {
		return pair{}, domain.NewValidationError("content", fmt.Sprintf("too many lines to diff (max %d)", s.cfg.MaxLines))
	}
	if cells := (len(fromLines) + 1) * (len(toLines) + 1); cells > s.cfg.MaxCells {
		return pair{}, domain.NewValidationError("content",
			fmt.Sprintf("versions too large to diff together (%d x %d lines)", len(fromLines), len(toLines)))
	}
	p.ops = linediff.Diff(fromLines, toLines)

	if p.scan, err = s.scanBoth(ctx, p.fromText, p.toText); err != nil {
		return pair{}, err
	}
	return p, nil
}

func (s *Service) scanBoth(ctx context.Context, fromText, toText string) (domain.ScanResult, error) {
	var out domain.ScanResult
	for _, text := range []string{fromText, toText} {
		res, err := s.scanner.Scan(ctx, text)
		if err != nil {
			return domain.ScanResult{}, fmt.Errorf("scan content: %w", err)
		}
		out.HasSensitiveData = out.HasSensitiveData || res.HasSensitiveData
		out.Locations = append(out.Locations, res.Locations...)
	}
	return out, nil
}

// diffText returns the kind's text field when it holds a string, otherwise
// the whole content as indented canonical JSON.
func diffText(v domain.VersionedEntity) (string, error) {
	if schema, ok := v.Kind.Schema(); ok {
		if text, isString := v.Content[schema.TextField].(string); isString {
			return text, nil
		}
	}

	canonical, err := contenthash.Canonicalize(v.Content)
	if err != nil {
		return "", fmt.Errorf("version %s: canonicalize content: %w", v.ID, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, canonical, "", "  "); err != nil {
		return "", fmt.Errorf("version %s: indent content: %w", v.ID, err)
	}
	return buf.String(), nil
}

// lineDigest is the truncated digest of one changed line.
func (s *Service) lineDigest(text string) (string, error) {
	d, err := contenthash.Sum(s.cfg.Algorithm, map[string]any{"line": text})
	if err != nil {
		return "", err
	}
	return contenthash.Short(d, s.cfg.DigestLength), nil
}

func toDiffOperation(op linediff.Operation) domain.DiffOperation {
	switch op {
	case linediff.OpInsert:
		return domain.DiffInsert
	case linediff.OpDelete:
		return domain.DiffDelete
	default:
		return domain.DiffEqual
	}
}
