package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/auditchain"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/metrics"
)

// Append links a new entry to the current tail of the ledger.
//
// Appenders are serialized by a transaction-scoped advisory lock; the unique
// previous_hash constraint rejects any fork that slips past it. When Append
// owns its transaction a lost race is retried up to Config.AppendRetries
// times. Inside a caller's transaction the conflict is returned so the caller
// can retry its whole unit of work.
func (s *Service) Append(ctx context.Context, input AppendInput) (domain.AuditEntry, error) {
	if err := input.Validate(); err != nil {
		return domain.AuditEntry{}, err
	}

	start := s.now()
	attempts := 1
	if !s.tx.InTx(ctx) {
		attempts += s.cfg.AppendRetries
	}

	var (
		entry   domain.AuditEntry
		err     error
		retries int
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		entry, err = s.appendOnce(ctx, input)
		if err == nil || !domain.IsRetryable(err) || ctx.Err() != nil || attempt == attempts {
			break
		}
		retries++
		s.log.WarnContext(ctx, "ledger append lost race, retrying",
			slog.String("event_type", input.EventType.String()),
			slog.Int("attempt", attempt),
		)
	}

	s.metrics.ObserveAppend(input.EventType.String(), metrics.Outcome(err, domain.IsRetryable), retries, s.now().Sub(start))
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("append %s: %w", input.EventType, err)
	}

	s.log.DebugContext(ctx, "ledger entry appended",
		slog.String("entry_id", entry.ID.String()),
		slog.Int64("seq", entry.Seq),
		slog.String("event_type", entry.EventType.String()),
	)
	return entry, nil
}

func (s *Service) appendOnce(ctx context.Context, input AppendInput) (domain.AuditEntry, error) {
	var entry domain.AuditEntry
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.entries.LockLedger(txCtx, s.cfg.LockKey); err != nil {
			return fmt.Errorf("lock ledger: %w", err)
		}

		previous, err := s.tailHash(txCtx)
		if err != nil {
			return err
		}

		sealed, err := auditchain.Seal(domain.AuditEntry{
			ID:            uuid.New(),
			EventType:     input.EventType,
			UserID:        input.UserID,
			Action:        strings.TrimSpace(input.Action),
			ResourceType:  strings.TrimSpace(input.ResourceType),
			ResourceID:    strings.TrimSpace(input.ResourceID),
			Details:       copyDetails(input.Details),
			CreatedAt:     s.now(),
			HashAlgorithm: s.cfg.Algorithm.String(),
		}, previous)
		if err != nil {
			return fmt.Errorf("seal entry: %w", err)
		}

		entry, err = s.entries.Insert(txCtx, sealed)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		return nil
	})
	return entry, err
}

// tailHash returns the entry hash of the newest entry, or GenesisHash.
func (s *Service) tailHash(ctx context.Context) (string, error) {
	last, err := s.entries.Last(ctx)
	switch {
	case err == nil:
		return last.EntryHash, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.GenesisHash, nil
	default:
		return "", fmt.Errorf("read last entry: %w", err)
	}
}

// copyDetails detaches the stored map from the caller's.
func copyDetails(d map[string]any) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
