package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

// LastHash returns the entry hash of the newest entry, or GenesisHash when
// the ledger is empty.
func (s *Service) LastHash(ctx context.Context) (string, error) {
	return s.tailHash(ctx)
}

// GetEntry returns a single entry.
func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// ListEntries returns entries in ledger order matching input.
func (s *Service) ListEntries(ctx context.Context, input ListInput) (EntryPage, error) {
	if err := input.Validate(); err != nil {
		return EntryPage{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}

	entries, err := s.entries.List(ctx, domain.AuditFilter{
		EventType:    input.EventType,
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		UserID:       input.UserID,
		From:         input.From,
		To:           input.To,
		AfterSeq:     input.AfterSeq,
		Limit:        limit + 1,
	})
	if err != nil {
		return EntryPage{}, fmt.Errorf("list entries: %w", err)
	}

	page := EntryPage{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		page.HasMore = true
	}
	if n := len(page.Entries); n > 0 {
		page.NextAfterSeq = page.Entries[n-1].Seq
	}
	return page, nil
}
