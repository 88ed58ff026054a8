package history

import (
	"context"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
)

// Repository stores and lists upload history.
type Repository interface {
	// Insert adds rec. rec.ID must be unique.
	Insert(ctx context.Context, rec models.HistoryRecord) error

	// ListRecent returns up to limit records, newest first. A non-positive
	// limit returns all records.
	ListRecent(ctx context.Context, limit int) ([]models.HistoryRecord, error)

	// Prune deletes all but the keep newest records and reports how many
	// rows were removed.
	Prune(ctx context.Context, keep int) (int64, error)

	// Clear removes every record.
	Clear(ctx context.Context) (int64, error)
}
