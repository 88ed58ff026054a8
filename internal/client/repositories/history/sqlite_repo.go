package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec models.HistoryRecord) error {
	files := rec.Files
	if files == nil {
		files = []string{}
	}
	encoded, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("failed to encode file names: %w", err)
	}

	query := `insert into uploads (id, session_id, files, image_url, digest, size, created_at)
		values (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.SessionID, string(encoded), rec.ImageURL, rec.Digest, rec.Size, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `select id, session_id, files, image_url, digest, size, created_at
		from uploads order by created_at desc, rowid desc limit ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error selecting uploads: %w", err)
	}
	defer rows.Close()

	result := []models.HistoryRecord{}
	for rows.Next() {
		var (
			rec     models.HistoryRecord
			files   string
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &files, &rec.ImageURL, &rec.Digest, &rec.Size, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(files), &rec.Files); err != nil {
			return nil, fmt.Errorf("corrupt file list for %s: %w", rec.ID, err)
		}
		rec.CreatedAt = time.UnixMilli(created).UTC()
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	query := `delete from uploads where rowid not in (
		select rowid from uploads order by created_at desc, rowid desc limit ?)`
	result, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune uploads: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `delete from uploads`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear uploads: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
