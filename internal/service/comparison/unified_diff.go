package comparison

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/linediff"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// GetUnifiedDiff groups the edit script into hunks. Raw text is included
// only when includeText is set and neither side contains sensitive data;
// otherwise lines carry digests only and TextRedacted reports the withholding.
func (s *Service) GetUnifiedDiff(ctx context.Context, fromID, toID uuid.UUID, includeText bool) (domain.UnifiedDiff, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UnifiedDiff{}, domain.ErrUnauthorized
	}

	p, err := s.prepare(ctx, fromID, toID)
	if err != nil {
		return domain.UnifiedDiff{}, err
	}

	out := domain.UnifiedDiff{
		FromVersionID:         fromID,
		ToVersionID:           toID,
		ContainsSensitiveData: p.scan.HasSensitiveData,
	}
	release := includeText && !p.scan.HasSensitiveData
	out.TextRedacted = includeText && !release

	hunks := linediff.Hunks(p.ops, s.cfg.ContextLines)
	out.Hunks = make([]domain.UnifiedHunk, 0, len(hunks))
	for _, h := range hunks {
		uh := domain.UnifiedHunk{
			OldStart: h.OldStart,
			OldLines: h.OldLines,
			NewStart: h.NewStart,
			NewLines: h.NewLines,
			Lines:    make([]domain.UnifiedLine, 0, len(h.Ops)),
		}
		for _, op := range h.Ops {
			line := domain.UnifiedLine{
				Operation: toDiffOperation(op.Operation),
				OldLine:   op.OldLine,
				NewLine:   op.NewLine,
			}
			if op.Operation != linediff.OpEqual {
				if line.Digest, err = s.lineDigest(op.Text); err != nil {
					return domain.UnifiedDiff{}, fmt.Errorf("digest line: %w", err)
				}
			}
			if release {
				line.Text = op.Text
			}
			uh.Lines = append(uh.Lines, line)
		}
		out.Hunks = append(out.Hunks, uh)
	}

	if release {
		text, err := renderUnified(fromID, toID, hunks)
		if err != nil {
			return domain.UnifiedDiff{}, fmt.Errorf("render unified diff: %w", err)
		}
		out.Text = text
		out.TextIncluded = true
	}

	if out.TextRedacted {
		s.log.WarnContext(ctx, "unified diff text withheld",
			slog.String("user_id", userID.String()),
			slog.String("from_version_id", fromID.String()),
			slog.String("to_version_id", toID.String()),
			slog.Int("sensitive_matches", len(p.scan.Locations)),
		)
	}

	return out, nil
}

// renderUnified prints hunks in unified diff format with a/ and b/ headers
// named after the version ids.
func renderUnified(fromID, toID uuid.UUID, hunks []linediff.Hunk) (string, error) {
	if len(hunks) == 0 {
		return "", nil
	}

	fd := &godiff.FileDiff{
		OrigName: "a/" + fromID.String(),
		NewName:  "b/" + toID.String(),
		Hunks:    make([]*godiff.Hunk, 0, len(hunks)),
	}
	for _, h := range hunks {
		var body strings.Builder
		for _, op := range h.Ops {
			switch op.Operation {
			case linediff.OpInsert:
				body.WriteByte('+')
			case linediff.OpDelete:
				body.WriteByte('-')
			default:
				body.WriteByte(' ')
			}
			body.WriteString(op.Text)
			body.WriteByte('\n')
		}
		fd.Hunks = append(fd.Hunks, &godiff.Hunk{
			OrigStartLine: int32(h.OldStart),
			OrigLines:     int32(h.OldLines),
			NewStartLine:  int32(h.NewStart),
			NewLines:      int32(h.NewLines),
			Body:          []byte(body.String()),
		})
	}

	b, err := godiff.PrintFileDiff(fd)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
