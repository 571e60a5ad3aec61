package entities

import (
	"time"

	"github.com/google/uuid"
)

// ThumbnailRecord is the immutable ledger entry written when a request is approved
type ThumbnailRecord struct {
	ID         int64      `db:"id"`
	GuildID    int64      `db:"guild_id"`
	RequestID  *uuid.UUID `db:"request_id"`
	DesignerID int64      `db:"designer_id"`
	CreatorID  int64      `db:"creator_id"`
	Category   string     `db:"category"` // Free text so it survives category removal
	SourceURL  string     `db:"source_url"`
	CreatedAt  time.Time  `db:"created_at"`
}

// ThumbnailRecordExportRow is a record joined with the names needed for export
type ThumbnailRecordExportRow struct {
	RecordID     int64
	DesignerName string
	CreatorName  string
	Category     string
	SourceURL    string
	CreatedAt    time.Time
}
