// Package dbtest starts a throwaway PostgreSQL for repository tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/taiwoajasa245/quran-api/internal/database"
)

const image = "postgres:16-alpine"

// New returns a migrated database.Service backed by a fresh container. The test is
// skipped under -short or when no container runtime is reachable.
func New(t *testing.T) database.Service {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	ctr, err := postgres.Run(ctx, image,
		postgres.WithDatabase("quran"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := database.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedKitab inserts the Quran kitab and returns its id.
func SeedKitab(t *testing.T, db database.Service) int {
	t.Helper()
	var id int
	err := db.DB().QueryRowContext(context.Background(), `
		INSERT INTO kitabs (name, name_arabic, description)
		VALUES ('Quran', 'القرآن الكريم', 'The Holy Quran')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&id)
	if err != nil {
		t.Fatalf("seed kitab: %v", err)
	}
	return id
}
