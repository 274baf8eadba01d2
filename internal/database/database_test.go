package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-api/internal/database/dbtest"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Migrate(context.Background()))

	var tables int
	err := db.DB().QueryRowContext(context.Background(), `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name IN ('users','kitabs','surahs','paras','ayahs','translations','tafsirs','reciters')
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 8, tables)
}

func TestHealth(t *testing.T) {
	db := dbtest.New(t)

	stats := db.Health()
	assert.Equal(t, "up", stats["status"])
	assert.NotEmpty(t, stats["open_connections"])
}
