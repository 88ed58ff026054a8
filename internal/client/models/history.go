package models

import "time"

// HistoryRecord is one successfully uploaded batch kept in the local
// history database.
type HistoryRecord struct {
	ID        string
	SessionID string
	Files     []string
	ImageURL  string
	Digest    string
	Size      int64
	CreatedAt time.Time
}
