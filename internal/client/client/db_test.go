package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/client/repositories/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "history.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	assert.True(t, tableExists(t, repos.DB, "goose_db_version"))
	assert.True(t, tableExists(t, repos.DB, "uploads"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "uploads"))
}

func TestInitDatabase_HistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)

	rec := models.HistoryRecord{
		ID:        "r1",
		SessionID: "s1",
		Files:     []string{"cat.png"},
		ImageURL:  "https://example.test/img123",
		Digest:    "abc",
		Size:      3,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, history.NewSQLiteRepository(repos.DB).Insert(ctx, rec))
	require.NoError(t, repos.Close())

	reopened, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := history.NewSQLiteRepository(reopened.DB).ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestInitDatabase_InMemory(t *testing.T) {
	repos, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	assert.True(t, tableExists(t, repos.DB, "uploads"))
}
