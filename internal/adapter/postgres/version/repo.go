// Package version implements the version chain repository using PostgreSQL.
// Rows are immutable except for the DRAFT -> LOCKED/SUPERSEDED status flip,
// which is always a compare-and-set on the current status.
package version

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

const entity = "version"

var columns = []string{
	"id", "kind", "parent_id", "version", "content", "version_hash", "hash_algorithm",
	"previous_version_id", "status", "created_by", "created_at", "locked_at", "locked_by",
}

// Repo provides version chain persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new version repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new version row. CreatedAt is taken from v.
func (r *Repo) Create(ctx context.Context, v domain.VersionedEntity) (domain.VersionedEntity, error) {
	content, err := json.Marshal(contentOrEmpty(v.Content))
	if err != nil {
		return domain.VersionedEntity{}, fmt.Errorf("%s %s marshal content: %w", entity, v.ID, err)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO resource_versions
		    (id, kind, parent_id, version, content, version_hash, hash_algorithm,
		     previous_version_id, status, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, string(v.Kind), v.ParentResourceID, v.Version, content, v.VersionHash, v.HashAlgorithm,
		v.PreviousVersionID, string(v.Status), v.CreatedBy, v.CreatedAt,
	)
	if err != nil {
		return domain.VersionedEntity{}, postgres.MapError(err, entity, v.ID)
	}
	return v, nil
}

// CompareAndSetStatus moves id from status from to status to. Zero rows
// affected means another writer changed the row first and yields
// domain.ErrConcurrencyConflict. lockedBy and lockedAt are written as given
// (nil for transitions other than LOCKED).
func (r *Repo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.VersionStatus, lockedBy *uuid.UUID, lockedAt *time.Time) error {
	query, args, err := postgres.Builder.
		Update("resource_versions").
		Set("status", string(to)).
		Set("locked_by", lockedBy).
		Set("locked_at", lockedAt).
		Where(sq.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build status update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: status is no longer %s: %w", entity, id, from, domain.ErrConcurrencyConflict)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a single version row.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.VersionedEntity, error) {
	return r.getOne(ctx, id, postgres.Builder.
		Select(columns...).
		From("resource_versions").
		Where(sq.Eq{"id": id}))
}

// GetCurrent returns the highest version of the chain whose status is not
// SUPERSEDED.
func (r *Repo) GetCurrent(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error) {
	return r.getOne(ctx, parentID, postgres.Builder.
		Select(columns...).
		From("resource_versions").
		Where(sq.Eq{"kind": string(kind), "parent_id": parentID}).
		Where(sq.NotEq{"status": string(domain.VersionStatusSuperseded)}).
		OrderBy("version DESC").
		Limit(1))
}

// ChainExists reports whether parentID already has any version of kind.
func (r *Repo) ChainExists(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM resource_versions WHERE kind = $1 AND parent_id = $2)`,
		string(kind), parentID,
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, entity, parentID)
	}
	return exists, nil
}

// History returns a page of the chain, newest first. page.BeforeVersion = 0
// starts from the newest row; page.Limit must already be bounded.
func (r *Repo) History(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID, page domain.HistoryPage) ([]domain.VersionedEntity, error) {
	b := postgres.Builder.
		Select(columns...).
		From("resource_versions").
		Where(sq.Eq{"kind": string(kind), "parent_id": parentID}).
		OrderBy("version DESC")
	if page.BeforeVersion > 0 {
		b = b.Where(sq.Lt{"version": page.BeforeVersion})
	}
	if page.Limit > 0 {
		b = b.Limit(uint64(page.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	var rows []versionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, parentID)
	}

	out := make([]domain.VersionedEntity, 0, len(rows))
	for _, row := range rows {
		v, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Repo) getOne(ctx context.Context, key uuid.UUID, b sq.SelectBuilder) (domain.VersionedEntity, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return domain.VersionedEntity{}, fmt.Errorf("build %s query: %w", entity, err)
	}

	var row versionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.VersionedEntity{}, postgres.MapError(err, entity, key)
	}
	return row.toDomain()
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type versionRow struct {
	ID                uuid.UUID  `db:"id"`
	Kind              string     `db:"kind"`
	ParentID          uuid.UUID  `db:"parent_id"`
	Version           int        `db:"version"`
	Content           []byte     `db:"content"`
	VersionHash       string     `db:"version_hash"`
	HashAlgorithm     string     `db:"hash_algorithm"`
	PreviousVersionID *uuid.UUID `db:"previous_version_id"`
	Status            string     `db:"status"`
	CreatedBy         uuid.UUID  `db:"created_by"`
	CreatedAt         time.Time  `db:"created_at"`
	LockedAt          *time.Time `db:"locked_at"`
	LockedBy          *uuid.UUID `db:"locked_by"`
}

func (row versionRow) toDomain() (domain.VersionedEntity, error) {
	content := map[string]any{}
	if len(row.Content) > 0 {
		dec := json.NewDecoder(bytes.NewReader(row.Content))
		dec.UseNumber()
		if err := dec.Decode(&content); err != nil {
			return domain.VersionedEntity{}, fmt.Errorf("%s %s unmarshal content: %w", entity, row.ID, err)
		}
	}

	v := domain.VersionedEntity{
		ID:                row.ID,
		Kind:              domain.VersionKind(row.Kind),
		ParentResourceID:  row.ParentID,
		Version:           row.Version,
		Content:           content,
		VersionHash:       row.VersionHash,
		HashAlgorithm:     row.HashAlgorithm,
		PreviousVersionID: row.PreviousVersionID,
		Status:            domain.VersionStatus(row.Status),
		CreatedBy:         row.CreatedBy,
		CreatedAt:         row.CreatedAt.UTC(),
		LockedBy:          row.LockedBy,
	}
	if row.LockedAt != nil {
		t := row.LockedAt.UTC()
		v.LockedAt = &t
	}
	return v, nil
}

func contentOrEmpty(c map[string]any) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	return c
}
