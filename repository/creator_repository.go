package repository

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const creatorColumns = `id, guild_id, name, is_active, created_at, updated_at`

// CreatorRepository implements creator data access scoped to one guild
type CreatorRepository struct {
	q       Queryable
	guildID int64
}

// NewCreatorRepositoryScoped creates a new creator repository with guild scope
func NewCreatorRepositoryScoped(tx Queryable, guildID int64) *CreatorRepository {
	return &CreatorRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByName returns the creator with the given name in any state.
// An active row wins over inactive history rows.
func (r *CreatorRepository) GetByName(ctx context.Context, name string) (*entities.Creator, error) {
	query := `
		SELECT ` + creatorColumns + `
		FROM creators
		WHERE guild_id = $1 AND LOWER(name) = LOWER($2)
		ORDER BY is_active DESC, id DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, r.guildID, name)
}

// GetActiveByName returns the active creator with the given name
func (r *CreatorRepository) GetActiveByName(ctx context.Context, name string) (*entities.Creator, error) {
	query := `
		SELECT ` + creatorColumns + `
		FROM creators
		WHERE guild_id = $1 AND LOWER(name) = LOWER($2) AND is_active
	`
	return r.getOne(ctx, query, r.guildID, name)
}

// GetByID returns a creator by id
func (r *CreatorRepository) GetByID(ctx context.Context, id int64) (*entities.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE guild_id = $1 AND id = $2`
	return r.getOne(ctx, query, r.guildID, id)
}

// Create inserts an active creator
func (r *CreatorRepository) Create(ctx context.Context, name string) (*entities.Creator, error) {
	query := `
		INSERT INTO creators (guild_id, name)
		VALUES ($1, $2)
		RETURNING ` + creatorColumns

	creator, err := scanCreator(r.q.QueryRow(ctx, query, r.guildID, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create creator: %w", err)
	}
	return creator, nil
}

// Update persists the name and active flag of a creator
func (r *CreatorRepository) Update(ctx context.Context, creator *entities.Creator) error {
	query := `
		UPDATE creators
		SET name = $3, is_active = $4, updated_at = NOW()
		WHERE guild_id = $1 AND id = $2
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, r.guildID, creator.ID, creator.Name, creator.IsActive).Scan(&creator.UpdatedAt)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("creator %d not found", creator.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update creator: %w", err)
	}
	return nil
}

// ListActive returns active creators ordered by name, then id
func (r *CreatorRepository) ListActive(ctx context.Context) ([]*entities.Creator, error) {
	query := `
		SELECT ` + creatorColumns + `
		FROM creators
		WHERE guild_id = $1 AND is_active
		ORDER BY LOWER(name), id
	`
	return r.list(ctx, query, r.guildID)
}

// SearchActive returns active creators whose name contains term
func (r *CreatorRepository) SearchActive(ctx context.Context, term string, limit int) ([]*entities.Creator, error) {
	query := `
		SELECT ` + creatorColumns + `
		FROM creators
		WHERE guild_id = $1 AND is_active AND POSITION(LOWER($2) IN LOWER(name)) > 0
		ORDER BY LOWER(name), id
		LIMIT $3
	`
	return r.list(ctx, query, r.guildID, term, limit)
}

func (r *CreatorRepository) getOne(ctx context.Context, query string, args ...any) (*entities.Creator, error) {
	creator, err := scanCreator(r.q.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	return creator, nil
}

func (r *CreatorRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Creator, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query creators: %w", err)
	}
	defer rows.Close()

	var creators []*entities.Creator
	for rows.Next() {
		creator, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, creator)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creators: %w", err)
	}

	return creators, nil
}

func scanCreator(row pgx.Row) (*entities.Creator, error) {
	var creator entities.Creator
	err := row.Scan(
		&creator.ID,
		&creator.GuildID,
		&creator.Name,
		&creator.IsActive,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &creator, nil
}
