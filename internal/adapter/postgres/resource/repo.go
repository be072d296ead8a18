// Package resource implements the parent resource repository using PostgreSQL.
package resource

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

const entity = "resource"

// Repo provides resource persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new resource repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a resource.
func (r *Repo) Create(ctx context.Context, res domain.Resource) (domain.Resource, error) {
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO resources (id, kind, title, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		res.ID, string(res.Kind), res.Title, res.CreatedBy, res.CreatedAt,
	)
	if err != nil {
		return domain.Resource{}, postgres.MapError(err, entity, res.ID)
	}
	return res, nil
}

// GetByID returns a resource by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Resource, error) {
	query, args, err := postgres.Builder.
		Select("id", "kind", "title", "created_by", "created_at").
		From("resources").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Resource{}, fmt.Errorf("build get resource query: %w", err)
	}

	var row resourceRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.Resource{}, postgres.MapError(err, entity, id)
	}
	return domain.Resource{
		ID:        row.ID,
		Kind:      domain.ResourceKind(row.Kind),
		Title:     row.Title,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

type resourceRow struct {
	ID        uuid.UUID `db:"id"`
	Kind      string    `db:"kind"`
	Title     string    `db:"title"`
	CreatedBy uuid.UUID `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
