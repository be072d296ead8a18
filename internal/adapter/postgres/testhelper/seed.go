package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedResource inserts a parent resource of the given kind and returns it.
func SeedResource(t *testing.T, pool *pgxpool.Pool, kind domain.ResourceKind) domain.Resource {
	t.Helper()
	ctx := context.Background()

	res := domain.Resource{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     "Test " + string(kind) + " " + uniqueSuffix(),
		CreatedBy: uuid.New(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO resources (id, kind, title, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		res.ID, string(res.Kind), res.Title, res.CreatedBy, res.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedResource: %v", err)
	}

	return res
}

// SeedVersion inserts a DRAFT version 1 for parent with a placeholder hash.
// Repository tests use it when the digest itself is irrelevant.
func SeedVersion(t *testing.T, pool *pgxpool.Pool, kind domain.VersionKind, parentID uuid.UUID, content string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO resource_versions (id, kind, parent_id, version, content, version_hash, hash_algorithm, status, created_by)
		 VALUES ($1, $2, $3, 1, $4::jsonb, $5, 'sha256', 'DRAFT', $6)`,
		id, string(kind), parentID, content, "seed-"+uniqueSuffix(), uuid.New(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVersion: %v", err)
	}

	return id
}
