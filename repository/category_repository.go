package repository

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, guild_id, name, channel_id, is_active, created_at, updated_at`

// CategoryRepository implements category data access scoped to one guild.
// Names are expected to be normalized by the caller.
type CategoryRepository struct {
	q       Queryable
	guildID int64
}

// NewCategoryRepositoryScoped creates a new category repository with guild scope
func NewCategoryRepositoryScoped(tx Queryable, guildID int64) *CategoryRepository {
	return &CategoryRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByName returns the category with the given name in any state
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE guild_id = $1 AND name = $2
		ORDER BY is_active DESC, id DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, r.guildID, name)
}

// GetActiveByName returns the active category with the given name
func (r *CategoryRepository) GetActiveByName(ctx context.Context, name string) (*entities.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE guild_id = $1 AND name = $2 AND is_active
	`
	return r.getOne(ctx, query, r.guildID, name)
}

// Create inserts an active category
func (r *CategoryRepository) Create(ctx context.Context, name string, channelID *int64) (*entities.Category, error) {
	query := `
		INSERT INTO categories (guild_id, name, channel_id)
		VALUES ($1, $2, $3)
		RETURNING ` + categoryColumns

	category, err := scanCategory(r.q.QueryRow(ctx, query, r.guildID, name, channelID))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Update persists the channel and active flag of a category
func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	query := `
		UPDATE categories
		SET channel_id = $3, is_active = $4, updated_at = NOW()
		WHERE guild_id = $1 AND id = $2
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, r.guildID, category.ID, category.ChannelID, category.IsActive).Scan(&category.UpdatedAt)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("category %d not found", category.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// ListActive returns active categories ordered by name
func (r *CategoryRepository) ListActive(ctx context.Context) ([]*entities.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE guild_id = $1 AND is_active
		ORDER BY name, id
	`
	return r.list(ctx, query, r.guildID)
}

// SearchActive returns active categories whose name contains term
func (r *CategoryRepository) SearchActive(ctx context.Context, term string, limit int) ([]*entities.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE guild_id = $1 AND is_active AND POSITION(LOWER($2) IN name) > 0
		ORDER BY name, id
		LIMIT $3
	`
	return r.list(ctx, query, r.guildID, term, limit)
}

// CountActive returns the number of active categories
func (r *CategoryRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE guild_id = $1 AND is_active`, r.guildID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (r *CategoryRepository) getOne(ctx context.Context, query string, args ...any) (*entities.Category, error) {
	category, err := scanCategory(r.q.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func scanCategory(row pgx.Row) (*entities.Category, error) {
	var category entities.Category
	err := row.Scan(
		&category.ID,
		&category.GuildID,
		&category.Name,
		&category.ChannelID,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
