package history

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/imguploader/internal/client/migrations"
	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/dbx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	require.NoError(t, err)
	_, err = p.Up(context.Background())
	require.NoError(t, err)
	return db
}

var base = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func record(id string, offset time.Duration) models.HistoryRecord {
	return models.HistoryRecord{
		ID:        id,
		SessionID: "sess-" + id,
		Files:     []string{id + ".png"},
		ImageURL:  "https://cdn.example/" + id,
		Digest:    "d-" + id,
		Size:      10,
		CreatedAt: base.Add(offset),
	}
}

func TestInsertAndListRecent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, record("a", 0)))
	require.NoError(t, r.Insert(ctx, record("b", time.Minute)))
	require.NoError(t, r.Insert(ctx, record("c", 2*time.Minute)))

	got, err := r.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	assert.Equal(t, record("c", 2*time.Minute), got[0])
}

func TestListRecent_AllWhenLimitNotPositive(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Insert(ctx, record(id, time.Duration(i)*time.Second)))
	}

	got, err := r.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestListRecent_EmptyIsNotNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListRecent_SameTimestampKeepsInsertOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, record("first", 0)))
	require.NoError(t, r.Insert(ctx, record("second", 0)))

	got, err := r.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].ID)
}

func TestInsert_NilFilesStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	rec := record("a", 0)
	rec.Files = nil
	require.NoError(t, r.Insert(ctx, rec))

	got, err := r.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Files)
}

func TestInsert_DuplicateIDFails(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, record("a", 0)))
	assert.Error(t, r.Insert(ctx, record("a", time.Second)))
}

func TestPrune_KeepsNewest(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, r.Insert(ctx, record(id, time.Duration(i)*time.Second)))
	}

	n, err := r.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := r.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	n, err = r.Prune(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertAndPrune_InOneTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRepository(db).Insert(ctx, record("old", 0)))

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Insert(ctx, record("new", time.Hour)); err != nil {
			return err
		}
		_, err := repo.Prune(ctx, 1)
		return err
	})
	require.NoError(t, err)

	got, err := NewSQLiteRepository(db).ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, record("a", 0)))
	require.NoError(t, r.Insert(ctx, record("b", time.Second)))

	n, err := r.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := r.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
