package entities

import "time"

// StaffKind discriminates the three staff rosters
type StaffKind string

const (
	StaffKindEditor   StaffKind = "editor"
	StaffKindDesigner StaffKind = "designer"
	StaffKindOverseer StaffKind = "overseer"
)

// AllStaffKinds returns every staff kind in display order
func AllStaffKinds() []StaffKind {
	return []StaffKind{StaffKindEditor, StaffKindDesigner, StaffKindOverseer}
}

// IsValid checks if the kind is one of the known staff kinds
func (k StaffKind) IsValid() bool {
	switch k {
	case StaffKindEditor, StaffKindDesigner, StaffKindOverseer:
		return true
	}
	return false
}

// Label returns the human readable name of the kind
func (k StaffKind) Label() string {
	switch k {
	case StaffKindEditor:
		return RoleLabelEditor
	case StaffKindDesigner:
		return RoleLabelDesigner
	case StaffKindOverseer:
		return RoleLabelOverseer
	default:
		return string(k)
	}
}

// StaffMember is an editor, designer or overseer known to a guild
type StaffMember struct {
	ID          int64     `db:"id"`
	GuildID     int64     `db:"guild_id"`
	Kind        StaffKind `db:"kind"`
	DiscordID   int64     `db:"discord_id"`
	DisplayName string    `db:"display_name"` // Snapshot, refreshed on reactivation and role sync
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
