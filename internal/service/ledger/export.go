package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/heartmarshall/research-ledger/internal/auditchain"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

// ErrTruncatedExport is returned by VerifyExport when the archive does not
// end with a trailer that matches the entries before it.
var ErrTruncatedExport = errors.New("export is truncated or inconsistent")

// exportTrailer closes a complete export. It is only written after the last
// entry was streamed successfully.
type exportTrailer struct {
	Entries  int    `json:"entries"`
	LastHash string `json:"lastHash"`
}

// exportRecord is one JSON line of a ledger export. The final line carries
// only Trailer.
type exportRecord struct {
	Trailer       *exportTrailer `json:"trailer,omitempty"`
	Seq           int64          `json:"seq"`
	ID            uuid.UUID      `json:"id"`
	EventType     string         `json:"eventType"`
	UserID        *uuid.UUID     `json:"userId"`
	Action        string         `json:"action"`
	ResourceType  string         `json:"resourceType"`
	ResourceID    string         `json:"resourceId"`
	Details       map[string]any `json:"details"`
	CreatedAt     time.Time      `json:"createdAt"`
	PreviousHash  string         `json:"previousHash"`
	EntryHash     string         `json:"entryHash"`
	HashAlgorithm string         `json:"hashAlgorithm"`
}

func toExportRecord(e domain.AuditEntry) exportRecord {
	return exportRecord{
		Seq:           e.Seq,
		ID:            e.ID,
		EventType:     e.EventType.String(),
		UserID:        e.UserID,
		Action:        e.Action,
		ResourceType:  e.ResourceType,
		ResourceID:    e.ResourceID,
		Details:       e.Details,
		CreatedAt:     e.CreatedAt,
		PreviousHash:  e.PreviousHash,
		EntryHash:     e.EntryHash,
		HashAlgorithm: e.HashAlgorithm,
	}
}

func (r exportRecord) toDomain() domain.AuditEntry {
	details := r.Details
	if details == nil {
		details = map[string]any{}
	}
	return domain.AuditEntry{
		ID:            r.ID,
		Seq:           r.Seq,
		EventType:     domain.EventType(r.EventType),
		UserID:        r.UserID,
		Action:        r.Action,
		ResourceType:  r.ResourceType,
		ResourceID:    r.ResourceID,
		Details:       details,
		CreatedAt:     r.CreatedAt.UTC(),
		PreviousHash:  r.PreviousHash,
		EntryHash:     r.EntryHash,
		HashAlgorithm: r.HashAlgorithm,
	}
}

// Export writes every entry in ledger order to w as zstd-compressed JSON
// Lines, read from one snapshot, followed by a trailer with the entry count
// and last hash. On error no trailer is written. It returns the number of
// entries written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, fmt.Errorf("export: zstd writer: %w", err)
	}

	enc := json.NewEncoder(zw)
	enc.SetEscapeHTML(false)

	var (
		written  int
		writeErr error
		lastHash = domain.GenesisHash
	)
	err = s.tx.RunInSnapshot(ctx, func(txCtx context.Context) error {
		return s.entries.Stream(txCtx, func(e domain.AuditEntry) bool {
			if writeErr = enc.Encode(toExportRecord(e)); writeErr != nil {
				return false
			}
			written++
			lastHash = e.EntryHash
			return true
		})
	})
	if err == nil {
		err = writeErr
	}
	if err == nil {
		err = enc.Encode(struct {
			Trailer exportTrailer `json:"trailer"`
		}{exportTrailer{Entries: written, LastHash: lastHash}})
	}
	if closeErr := zw.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, fmt.Errorf("export: %w", err)
	}

	s.log.InfoContext(ctx, "ledger exported", slog.Int("entries", written))
	return written, nil
}

// VerifyExport replays an export produced by Export without touching the
// database. A malformed file, or one whose trailer is missing or disagrees
// with its entries, is an error; a well-formed file with a broken chain is a
// result with Valid=false.
func VerifyExport(r io.Reader) (domain.ChainVerification, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return domain.ChainVerification{}, fmt.Errorf("verify export: zstd reader: %w", err)
	}
	defer zr.Close()

	dec := json.NewDecoder(zr)
	dec.UseNumber()

	v := auditchain.NewVerifier()
	var (
		trailer *exportTrailer
		records int
	)
	for line := 1; ; line++ {
		var rec exportRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return domain.ChainVerification{}, fmt.Errorf("verify export: record %d: %w", line, err)
		}
		if trailer != nil {
			return domain.ChainVerification{}, fmt.Errorf("verify export: record %d after trailer: %w", line, ErrTruncatedExport)
		}
		if rec.Trailer != nil {
			trailer = rec.Trailer
			continue
		}
		records++
		if !v.Check(rec.toDomain()) {
			return v.Result(), nil
		}
	}

	res := v.Result()
	switch {
	case trailer == nil:
		return domain.ChainVerification{}, fmt.Errorf("verify export: no trailer after %d entries: %w", records, ErrTruncatedExport)
	case trailer.Entries != records || trailer.LastHash != res.LastHash:
		return domain.ChainVerification{}, fmt.Errorf("verify export: trailer reports %d entries ending at %s, file has %d ending at %s: %w",
			trailer.Entries, trailer.LastHash, records, res.LastHash, ErrTruncatedExport)
	}
	return res, nil
}
