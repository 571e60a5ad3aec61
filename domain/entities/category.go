package entities

import (
	"strings"
	"time"
)

// Category routes requests to a destination channel when single-channel mode is off
type Category struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	Name      string    `db:"name"` // Always stored normalized
	ChannelID *int64    `db:"channel_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasChannel checks if the category has a destination channel
func (c *Category) HasChannel() bool {
	return c.ChannelID != nil && *c.ChannelID > 0
}

// NormalizeCategoryName lower-cases and trims a category name
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
