package testutil

import (
	"context"
	"testing"

	"thumbnailbot/database"
	"thumbnailbot/domain/entities"

	"github.com/stretchr/testify/require"
)

// TestGuildID is the guild every repository test seeds into
const TestGuildID = int64(1018733499869577296)

// SeedCreator inserts an active creator and returns it
func SeedCreator(t *testing.T, db *database.DB, guildID int64, name string) *entities.Creator {
	t.Helper()

	creator := &entities.Creator{GuildID: guildID, Name: name, IsActive: true}
	err := db.QueryRow(context.Background(),
		`INSERT INTO creators (guild_id, name) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		guildID, name,
	).Scan(&creator.ID, &creator.CreatedAt, &creator.UpdatedAt)
	require.NoError(t, err)
	return creator
}

// SeedStaff inserts an active staff member and returns it
func SeedStaff(t *testing.T, db *database.DB, guildID int64, kind entities.StaffKind, discordID int64, displayName string) *entities.StaffMember {
	t.Helper()

	member := &entities.StaffMember{
		GuildID:     guildID,
		Kind:        kind,
		DiscordID:   discordID,
		DisplayName: displayName,
		IsActive:    true,
	}
	err := db.QueryRow(context.Background(),
		`INSERT INTO staff_members (guild_id, kind, discord_id, display_name) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		guildID, kind, discordID, displayName,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	require.NoError(t, err)
	return member
}

// NewTestRequest builds an unsaved open request for creator
func NewTestRequest(guildID int64, creator *entities.Creator, category string) *entities.ThumbnailRequest {
	return entities.NewThumbnailRequest(
		guildID,
		creator,
		category,
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		100,
		"bob",
		555,
	)
}
