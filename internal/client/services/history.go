package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/client/repositories/history"
	"github.com/dmitrijs2005/imguploader/internal/cryptox"
	"github.com/dmitrijs2005/imguploader/internal/dbx"
	"github.com/google/uuid"
)

var ErrHistoryDisabled = errors.New("upload history is disabled")

// DefaultHistoryLimit is how many uploads are kept when no limit is set.
const DefaultHistoryLimit = 100

// HistoryService records successful uploads and lists them back.
type HistoryService struct {
	db      *sql.DB
	keep    int
	newRepo func(dbx.DBTX) history.Repository
	now     func() time.Time
	newID   func() string
}

// NewHistoryService keeps at most keep records; a non-positive keep uses
// DefaultHistoryLimit.
func NewHistoryService(db *sql.DB, keep int) *HistoryService {
	if keep <= 0 {
		keep = DefaultHistoryLimit
	}
	return &HistoryService{
		db:      db,
		keep:    keep,
		newRepo: func(tx dbx.DBTX) history.Repository { return history.NewSQLiteRepository(tx) },
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Record stores one completed upload and prunes older entries in the same
// transaction.
func (h *HistoryService) Record(ctx context.Context, sessionID string, uploaded []models.Candidate, imageURL string) (models.HistoryRecord, error) {
	rec := models.HistoryRecord{
		ID:        h.newID(),
		SessionID: sessionID,
		Files:     models.Names(uploaded),
		ImageURL:  imageURL,
		Digest:    cryptox.BatchDigest(uploaded),
		Size:      models.TotalSize(uploaded),
		CreatedAt: h.now().UTC(),
	}

	err := dbx.WithTx(ctx, h.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := h.newRepo(tx)
		if err := repo.Insert(ctx, rec); err != nil {
			return err
		}
		if _, err := repo.Prune(ctx, h.keep); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("record upload: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (h *HistoryService) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	return h.newRepo(h.db).ListRecent(ctx, limit)
}

// Clear removes all records.
func (h *HistoryService) Clear(ctx context.Context) (int64, error) {
	return h.newRepo(h.db).Clear(ctx)
}
