package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/research-ledger/internal/auditchain"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

// VerifyChain replays the whole ledger from a read-only snapshot and reports
// the first broken link, if any. It never writes.
func (s *Service) VerifyChain(ctx context.Context) (domain.ChainVerification, error) {
	v := auditchain.NewVerifier()
	err := s.tx.RunInSnapshot(ctx, func(txCtx context.Context) error {
		return s.entries.Stream(txCtx, v.Check)
	})
	if err != nil {
		return domain.ChainVerification{}, fmt.Errorf("verify chain: %w", err)
	}

	res := v.Result()
	s.metrics.ObserveVerify(res.Valid, res.EntriesValidated)

	if !res.Valid {
		s.log.WarnContext(ctx, "ledger chain broken",
			slog.String("broken_at", res.BrokenAt.String()),
			slog.String("reason", string(res.Reason)),
			slog.Int("entries_validated", res.EntriesValidated),
		)
		return res, nil
	}

	s.log.InfoContext(ctx, "ledger chain verified",
		slog.Int("entries_validated", res.EntriesValidated),
		slog.String("last_hash", res.LastHash),
	)
	return res, nil
}
