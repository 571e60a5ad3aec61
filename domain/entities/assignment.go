package entities

import "time"

// Assignment links an editor to a creator they may request thumbnails for
type Assignment struct {
	EditorID  int64     `db:"editor_id"`
	CreatorID int64     `db:"creator_id"`
	CreatedAt time.Time `db:"created_at"`
}
