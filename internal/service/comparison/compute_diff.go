package comparison

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/auditchain"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/linediff"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// ComputeDiff compares two versions of one chain, stores the summary and
// records VERSIONS_COMPARED in the ledger. The result never contains raw
// line text.
func (s *Service) ComputeDiff(ctx context.Context, fromID, toID uuid.UUID) (domain.DiffResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.DiffResult{}, domain.ErrUnauthorized
	}

	p, err := s.prepare(ctx, fromID, toID)
	if err != nil {
		return domain.DiffResult{}, err
	}

	lines := make([]domain.DiffLine, 0, len(p.ops))
	for _, op := range p.ops {
		line := domain.DiffLine{
			Operation: toDiffOperation(op.Operation),
			OldLine:   op.OldLine,
			NewLine:   op.NewLine,
		}
		if op.Operation != linediff.OpEqual {
			if line.Digest, err = s.lineDigest(op.Text); err != nil {
				return domain.DiffResult{}, fmt.Errorf("digest line: %w", err)
			}
		}
		lines = append(lines, line)
	}

	stats := linediff.Count(p.ops)
	result := domain.DiffResult{
		FromVersionID:         fromID,
		ToVersionID:           toID,
		AddedLines:            stats.Added,
		RemovedLines:          stats.Removed,
		UnchangedLines:        stats.Unchanged,
		Lines:                 lines,
		Summary:               stats.Summary(),
		ContainsSensitiveData: p.scan.HasSensitiveData,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, createErr := s.comparisons.Create(txCtx, domain.StoredComparison{
			ID:                    uuid.New(),
			FromVersionID:         fromID,
			ToVersionID:           toID,
			Summary:               result.Summary,
			AddedLines:            result.AddedLines,
			RemovedLines:          result.RemovedLines,
			UnchangedLines:        result.UnchangedLines,
			ContainsSensitiveData: result.ContainsSensitiveData,
			CreatedBy:             userID,
			CreatedAt:             auditchain.NormalizeTime(s.now()),
		})
		if createErr != nil {
			return fmt.Errorf("store comparison: %w", createErr)
		}
		result.ComparisonID = stored.ID

		if _, auditErr := s.audit.Append(txCtx, ledger.AppendInput{
			EventType:    domain.EventVersionsCompared,
			UserID:       &userID,
			Action:       "compare",
			ResourceType: "comparison",
			ResourceID:   stored.ID.String(),
			Details: map[string]any{
				"kind":                  p.from.Kind.String(),
				"parentResourceId":      p.from.ParentResourceID.String(),
				"fromVersionId":         fromID.String(),
				"toVersionId":           toID.String(),
				"fromVersionHash":       p.from.VersionHash,
				"toVersionHash":         p.to.VersionHash,
				"summary":               result.Summary,
				"addedLines":            result.AddedLines,
				"removedLines":          result.RemovedLines,
				"unchangedLines":        result.UnchangedLines,
				"containsSensitiveData": result.ContainsSensitiveData,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return domain.DiffResult{}, err
	}

	s.metrics.ObserveComparison(result.AddedLines, result.RemovedLines, result.ContainsSensitiveData)
	s.log.InfoContext(ctx, "versions compared",
		slog.String("user_id", userID.String()),
		slog.String("comparison_id", result.ComparisonID.String()),
		slog.String("summary", result.Summary),
		slog.Bool("contains_sensitive_data", result.ContainsSensitiveData),
	)

	return result, nil
}
