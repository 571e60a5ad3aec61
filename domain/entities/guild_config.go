package entities

import "time"

// Role labels reported when a guild has not configured every staff role
const (
	RoleLabelEditor   = "Editor"
	RoleLabelDesigner = "Designer"
	RoleLabelOverseer = "Overseer"
)

// GuildConfig represents per-guild workflow configuration
type GuildConfig struct {
	GuildID                  int64     `db:"guild_id"`
	EditorRoleID             *int64    `db:"editor_role_id"`   // Nullable - role that may request thumbnails
	DesignerRoleID           *int64    `db:"designer_role_id"` // Nullable - role that claims requests
	OverseerRoleID           *int64    `db:"overseer_role_id"` // Nullable - role that approves and sees private channels
	SingleThumbnailChannel   bool      `db:"single_thumbnail_channel"`
	SingleThumbnailChannelID *int64    `db:"single_thumbnail_channel_id"` // Nullable - destination in single-channel mode
	CreatedAt                time.Time `db:"created_at"`
	UpdatedAt                time.Time `db:"updated_at"`
}

// HasEditorRole checks if an editor role is configured
func (gc *GuildConfig) HasEditorRole() bool {
	return gc.EditorRoleID != nil && *gc.EditorRoleID > 0
}

// HasDesignerRole checks if a designer role is configured
func (gc *GuildConfig) HasDesignerRole() bool {
	return gc.DesignerRoleID != nil && *gc.DesignerRoleID > 0
}

// HasOverseerRole checks if an overseer role is configured
func (gc *GuildConfig) HasOverseerRole() bool {
	return gc.OverseerRoleID != nil && *gc.OverseerRoleID > 0
}

// HasSingleChannel checks if a single thumbnail channel is configured
func (gc *GuildConfig) HasSingleChannel() bool {
	return gc.SingleThumbnailChannelID != nil && *gc.SingleThumbnailChannelID > 0
}

// MissingRoles returns the labels of unset staff roles in a fixed order
func (gc *GuildConfig) MissingRoles() []string {
	var missing []string
	if !gc.HasEditorRole() {
		missing = append(missing, RoleLabelEditor)
	}
	if !gc.HasDesignerRole() {
		missing = append(missing, RoleLabelDesigner)
	}
	if !gc.HasOverseerRole() {
		missing = append(missing, RoleLabelOverseer)
	}
	return missing
}

// RoleIDFor returns the configured role for a staff kind
func (gc *GuildConfig) RoleIDFor(kind StaffKind) *int64 {
	switch kind {
	case StaffKindEditor:
		return gc.EditorRoleID
	case StaffKindDesigner:
		return gc.DesignerRoleID
	case StaffKindOverseer:
		return gc.OverseerRoleID
	default:
		return nil
	}
}

// SetRole sets the role for a staff kind
func (gc *GuildConfig) SetRole(kind StaffKind, roleID *int64) {
	switch kind {
	case StaffKindEditor:
		gc.EditorRoleID = roleID
	case StaffKindDesigner:
		gc.DesignerRoleID = roleID
	case StaffKindOverseer:
		gc.OverseerRoleID = roleID
	}
}

// KindForRole returns the staff kind mapped to a role, if any
func (gc *GuildConfig) KindForRole(roleID int64) (StaffKind, bool) {
	for _, kind := range AllStaffKinds() {
		if id := gc.RoleIDFor(kind); id != nil && *id == roleID {
			return kind, true
		}
	}
	return "", false
}
