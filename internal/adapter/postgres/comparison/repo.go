// Package comparison implements the stored comparison repository using
// PostgreSQL. Comparisons are written once and never updated.
package comparison

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/research-ledger/internal/adapter/postgres"
	"github.com/heartmarshall/research-ledger/internal/domain"
)

const entity = "comparison"

var columns = []string{
	"id", "from_version_id", "to_version_id", "summary", "added_lines", "removed_lines",
	"unchanged_lines", "contains_sensitive_data", "created_by", "created_at",
}

// Repo provides comparison persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new comparison repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a stored comparison.
func (r *Repo) Create(ctx context.Context, c domain.StoredComparison) (domain.StoredComparison, error) {
	query, args, err := postgres.Builder.
		Insert("comparisons").
		Columns(columns...).
		Values(c.ID, c.FromVersionID, c.ToVersionID, c.Summary, c.AddedLines, c.RemovedLines,
			c.UnchangedLines, c.ContainsSensitiveData, c.CreatedBy, c.CreatedAt).
		ToSql()
	if err != nil {
		return domain.StoredComparison{}, fmt.Errorf("build insert comparison: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return domain.StoredComparison{}, postgres.MapError(err, entity, c.ID)
	}
	return c, nil
}

// ListByVersion returns comparisons where versionID is either side, newest
// first, at most limit rows.
func (r *Repo) ListByVersion(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error) {
	b := postgres.Builder.
		Select(columns...).
		From("comparisons").
		Where(sq.Or{
			sq.Eq{"from_version_id": versionID},
			sq.Eq{"to_version_id": versionID},
		}).
		OrderBy("created_at DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comparisons: %w", err)
	}

	var rows []comparisonRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, versionID)
	}

	out := make([]domain.StoredComparison, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

type comparisonRow struct {
	ID                    uuid.UUID `db:"id"`
	FromVersionID         uuid.UUID `db:"from_version_id"`
	ToVersionID           uuid.UUID `db:"to_version_id"`
	Summary               string    `db:"summary"`
	AddedLines            int       `db:"added_lines"`
	RemovedLines          int       `db:"removed_lines"`
	UnchangedLines        int       `db:"unchanged_lines"`
	ContainsSensitiveData bool      `db:"contains_sensitive_data"`
	CreatedBy             uuid.UUID `db:"created_by"`
	CreatedAt             time.Time `db:"created_at"`
}

func (row comparisonRow) toDomain() domain.StoredComparison {
	return domain.StoredComparison{
		ID:                    row.ID,
		FromVersionID:         row.FromVersionID,
		ToVersionID:           row.ToVersionID,
		Summary:               row.Summary,
		AddedLines:            row.AddedLines,
		RemovedLines:          row.RemovedLines,
		UnchangedLines:        row.UnchangedLines,
		ContainsSensitiveData: row.ContainsSensitiveData,
		CreatedBy:             row.CreatedBy,
		CreatedAt:             row.CreatedAt.UTC(),
	}
}
