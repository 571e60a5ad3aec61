package repository

import (
	"context"
	"fmt"

	"thumbnailbot/database"
	"thumbnailbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const guildConfigColumns = `guild_id, editor_role_id, designer_role_id, overseer_role_id,
	single_thumbnail_channel, single_thumbnail_channel_id, created_at, updated_at`

// GuildConfigRepository implements the GuildConfigRepository interface
type GuildConfigRepository struct {
	q Queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// NewGuildConfigRepositoryWithTx creates a new guild config repository with a transaction
func NewGuildConfigRepositoryWithTx(tx Queryable) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx}
}

// GetByGuildID retrieves the guild config or nil when none exists
func (r *GuildConfigRepository) GetByGuildID(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	query := `SELECT ` + guildConfigColumns + ` FROM guild_configs WHERE guild_id = $1`

	config, err := scanGuildConfig(r.q.QueryRow(ctx, query, guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config for guild %d: %w", guildID, err)
	}

	return config, nil
}

// GetOrCreate retrieves the guild config or creates a default one if not found
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	config, err := r.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if config != nil {
		return config, nil
	}

	// ON CONFLICT keeps two concurrent first commands from failing
	insertQuery := `
		INSERT INTO guild_configs (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING ` + guildConfigColumns

	config, err = scanGuildConfig(r.q.QueryRow(ctx, insertQuery, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild config for guild %d: %w", guildID, err)
	}

	return config, nil
}

// Update updates role ids and channel mode for a guild
func (r *GuildConfigRepository) Update(ctx context.Context, config *entities.GuildConfig) error {
	query := `
		UPDATE guild_configs
		SET editor_role_id = $2,
		    designer_role_id = $3,
		    overseer_role_id = $4,
		    single_thumbnail_channel = $5,
		    single_thumbnail_channel_id = $6,
		    updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		config.GuildID,
		config.EditorRoleID,
		config.DesignerRoleID,
		config.OverseerRoleID,
		config.SingleThumbnailChannel,
		config.SingleThumbnailChannelID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guild config for guild %d: %w", config.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild config for guild %d not found", config.GuildID)
	}

	return nil
}

// GetGuildsWithRoles returns all guild IDs that have at least one staff role configured
func (r *GuildConfigRepository) GetGuildsWithRoles(ctx context.Context) ([]int64, error) {
	query := `
		SELECT guild_id
		FROM guild_configs
		WHERE editor_role_id IS NOT NULL
		   OR designer_role_id IS NOT NULL
		   OR overseer_role_id IS NOT NULL
		ORDER BY guild_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query guilds with roles: %w", err)
	}
	defer rows.Close()

	var guildIDs []int64
	for rows.Next() {
		var guildID int64
		if err := rows.Scan(&guildID); err != nil {
			return nil, fmt.Errorf("failed to scan guild ID: %w", err)
		}
		guildIDs = append(guildIDs, guildID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guild IDs: %w", err)
	}

	return guildIDs, nil
}

func scanGuildConfig(row pgx.Row) (*entities.GuildConfig, error) {
	var config entities.GuildConfig
	err := row.Scan(
		&config.GuildID,
		&config.EditorRoleID,
		&config.DesignerRoleID,
		&config.OverseerRoleID,
		&config.SingleThumbnailChannel,
		&config.SingleThumbnailChannelID,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
