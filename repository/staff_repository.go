package repository

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const staffColumns = `id, guild_id, kind, discord_id, display_name, is_active, created_at, updated_at`

// StaffRepository implements editor, designer and overseer data access
type StaffRepository struct {
	q       Queryable
	guildID int64
}

// NewStaffRepositoryScoped creates a new staff repository with guild scope
func NewStaffRepositoryScoped(tx Queryable, guildID int64) *StaffRepository {
	return &StaffRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByDiscordID returns the staff row of a kind for a Discord user in any state
func (r *StaffRepository) GetByDiscordID(ctx context.Context, kind entities.StaffKind, discordID int64) (*entities.StaffMember, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM staff_members
		WHERE guild_id = $1 AND kind = $2 AND discord_id = $3
	`
	return r.getOne(ctx, query, r.guildID, kind, discordID)
}

// GetActiveByDiscordID returns the active staff row of a kind for a Discord user
func (r *StaffRepository) GetActiveByDiscordID(ctx context.Context, kind entities.StaffKind, discordID int64) (*entities.StaffMember, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM staff_members
		WHERE guild_id = $1 AND kind = $2 AND discord_id = $3 AND is_active
	`
	return r.getOne(ctx, query, r.guildID, kind, discordID)
}

// GetByID returns a staff row by id
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*entities.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE guild_id = $1 AND id = $2`
	return r.getOne(ctx, query, r.guildID, id)
}

// Create inserts an active staff member
func (r *StaffRepository) Create(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) (*entities.StaffMember, error) {
	query := `
		INSERT INTO staff_members (guild_id, kind, discord_id, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + staffColumns

	member, err := scanStaffMember(r.q.QueryRow(ctx, query, r.guildID, kind, discordID, displayName))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return member, nil
}

// Update persists the display name and active flag of a staff member
func (r *StaffRepository) Update(ctx context.Context, member *entities.StaffMember) error {
	query := `
		UPDATE staff_members
		SET display_name = $3, is_active = $4, updated_at = NOW()
		WHERE guild_id = $1 AND id = $2
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, r.guildID, member.ID, member.DisplayName, member.IsActive).Scan(&member.UpdatedAt)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("staff member %d not found", member.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}
	return nil
}

// ListActive returns active staff of a kind ordered by display name, then id
func (r *StaffRepository) ListActive(ctx context.Context, kind entities.StaffKind) ([]*entities.StaffMember, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM staff_members
		WHERE guild_id = $1 AND kind = $2 AND is_active
		ORDER BY LOWER(display_name), id
	`
	return r.list(ctx, query, r.guildID, kind)
}

// SearchActive returns active staff of a kind whose display name contains term
func (r *StaffRepository) SearchActive(ctx context.Context, kind entities.StaffKind, term string, limit int) ([]*entities.StaffMember, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM staff_members
		WHERE guild_id = $1 AND kind = $2 AND is_active
		  AND POSITION(LOWER($3) IN LOWER(display_name)) > 0
		ORDER BY LOWER(display_name), id
		LIMIT $4
	`
	return r.list(ctx, query, r.guildID, kind, term, limit)
}

func (r *StaffRepository) getOne(ctx context.Context, query string, args ...any) (*entities.StaffMember, error) {
	member, err := scanStaffMember(r.q.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return member, nil
}

func (r *StaffRepository) list(ctx context.Context, query string, args ...any) ([]*entities.StaffMember, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff members: %w", err)
	}
	defer rows.Close()

	var members []*entities.StaffMember
	for rows.Next() {
		member, err := scanStaffMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff members: %w", err)
	}

	return members, nil
}

func scanStaffMember(row pgx.Row) (*entities.StaffMember, error) {
	var member entities.StaffMember
	err := row.Scan(
		&member.ID,
		&member.GuildID,
		&member.Kind,
		&member.DiscordID,
		&member.DisplayName,
		&member.IsActive,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}
