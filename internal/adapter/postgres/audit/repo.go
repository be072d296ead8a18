// Package audit implements the audit ledger repository using PostgreSQL.
// Rows are append-only; the table rejects UPDATE and DELETE.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/research-ledger/internal/adapter/postgres"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

const entity = "audit_entry"

var columns = []string{
	"seq", "id", "event_type", "user_id", "action", "resource_type", "resource_id",
	"details", "created_at", "previous_hash", "entry_hash", "hash_algorithm",
}

// Repo provides audit ledger persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// LockLedger takes the transaction-scoped advisory lock that serializes
// appenders. Must run inside a transaction; the lock is released on commit
// or rollback.
func (r *Repo) LockLedger(ctx context.Context, key int64) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		return postgres.MapError(err, "ledger lock", key)
	}
	return nil
}

// Insert persists a sealed entry and returns it with Seq filled.
func (r *Repo) Insert(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	details, err := json.Marshal(detailsOrEmpty(e.Details))
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("%s %s marshal details: %w", entity, e.ID, err)
	}

	var seq int64
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`INSERT INTO audit_entries
		    (id, event_type, user_id, action, resource_type, resource_id, details,
		     created_at, previous_hash, entry_hash, hash_algorithm)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING seq`,
		e.ID, string(e.EventType), e.UserID, e.Action, e.ResourceType, e.ResourceID, details,
		e.CreatedAt, e.PreviousHash, e.EntryHash, e.HashAlgorithm,
	).Scan(&seq)
	if err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, entity, e.ID)
	}

	e.Seq = seq
	return e, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Last returns the most recently appended entry, or domain.ErrNotFound when
// the ledger is empty.
func (r *Repo) Last(ctx context.Context) (domain.AuditEntry, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("audit_entries").
		OrderBy("seq DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("build last entry query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, entity, "last")
	}
	return row.toDomain()
}

// GetByID returns a single entry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("audit_entries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("build get entry query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, entity, id)
	}
	return row.toDomain()
}

// List returns entries matching filter in seq order, starting after
// filter.AfterSeq. filter.Limit must already be bounded by the caller.
func (r *Repo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	b := postgres.Builder.
		Select(columns...).
		From("audit_entries").
		Where(sq.Gt{"seq": filter.AfterSeq}).
		OrderBy("seq ASC")

	if filter.EventType != "" {
		b = b.Where(sq.Eq{"event_type": string(filter.EventType)})
	}
	if filter.ResourceType != "" {
		b = b.Where(sq.Eq{"resource_type": filter.ResourceType})
	}
	if filter.ResourceID != "" {
		b = b.Where(sq.Eq{"resource_id": filter.ResourceID})
	}
	if filter.UserID != nil {
		b = b.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.From != nil {
		b = b.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		b = b.Where(sq.Lt{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, "list")
	}

	entries := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Stream reads every entry in seq order and passes it to fn until fn returns
// false. Rows are scanned one at a time.
func (r *Repo) Stream(ctx context.Context, fn func(domain.AuditEntry) bool) error {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("audit_entries").
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build stream query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, "stream")
	}
	defer rows.Close()

	scanner := pgxscan.NewRowScanner(rows)
	for rows.Next() {
		var row entryRow
		if err := scanner.Scan(&row); err != nil {
			return fmt.Errorf("scan %s: %w", entity, err)
		}
		e, err := row.toDomain()
		if err != nil {
			return err
		}
		if !fn(e) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return postgres.MapError(err, entity, "stream")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type entryRow struct {
	Seq           int64      `db:"seq"`
	ID            uuid.UUID  `db:"id"`
	EventType     string     `db:"event_type"`
	UserID        *uuid.UUID `db:"user_id"`
	Action        string     `db:"action"`
	ResourceType  string     `db:"resource_type"`
	ResourceID    string     `db:"resource_id"`
	Details       []byte     `db:"details"`
	CreatedAt     time.Time  `db:"created_at"`
	PreviousHash  string     `db:"previous_hash"`
	EntryHash     string     `db:"entry_hash"`
	HashAlgorithm string     `db:"hash_algorithm"`
}

func (row entryRow) toDomain() (domain.AuditEntry, error) {
	details, err := decodeDetails(row.Details)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("%s %s unmarshal details: %w", entity, row.ID, err)
	}
	return domain.AuditEntry{
		ID:            row.ID,
		Seq:           row.Seq,
		EventType:     domain.EventType(row.EventType),
		UserID:        row.UserID,
		Action:        row.Action,
		ResourceType:  row.ResourceType,
		ResourceID:    row.ResourceID,
		Details:       details,
		CreatedAt:     row.CreatedAt.UTC(),
		PreviousHash:  row.PreviousHash,
		EntryHash:     row.EntryHash,
		HashAlgorithm: row.HashAlgorithm,
	}, nil
}

// decodeDetails keeps numbers as json.Number so they re-canonicalize to the
// same text that was hashed.
func decodeDetails(raw []byte) (map[string]any, error) {
	details := map[string]any{}
	if len(raw) == 0 {
		return details, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&details); err != nil {
		return nil, err
	}
	return details, nil
}

func detailsOrEmpty(d map[string]any) map[string]any {
	if d == nil {
		return map[string]any{}
	}
	return d
}
