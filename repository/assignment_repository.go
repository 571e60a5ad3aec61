package repository

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"
)

// AssignmentRepository implements editor to creator link data access.
// Links are joined through guild-scoped rows so another guild's ids never match.
type AssignmentRepository struct {
	q       Queryable
	guildID int64
}

// NewAssignmentRepositoryScoped creates a new assignment repository with guild scope
func NewAssignmentRepositoryScoped(tx Queryable, guildID int64) *AssignmentRepository {
	return &AssignmentRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Exists reports whether an editor is linked to a creator
func (r *AssignmentRepository) Exists(ctx context.Context, editorID, creatorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM editor_assignments a
			JOIN staff_members s ON s.id = a.editor_id
			WHERE a.editor_id = $1 AND a.creator_id = $2 AND s.guild_id = $3
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, editorID, creatorID, r.guildID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

// Create links an editor to a creator
func (r *AssignmentRepository) Create(ctx context.Context, editorID, creatorID int64) error {
	query := `INSERT INTO editor_assignments (editor_id, creator_id) VALUES ($1, $2)`

	if _, err := r.q.Exec(ctx, query, editorID, creatorID); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// Delete removes a link and reports whether it existed
func (r *AssignmentRepository) Delete(ctx context.Context, editorID, creatorID int64) (bool, error) {
	query := `
		DELETE FROM editor_assignments a
		USING staff_members s
		WHERE s.id = a.editor_id AND a.editor_id = $1 AND a.creator_id = $2 AND s.guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, editorID, creatorID, r.guildID)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListCreatorsForEditor returns active creators linked to an editor, ordered by name
func (r *AssignmentRepository) ListCreatorsForEditor(ctx context.Context, editorID int64) ([]*entities.Creator, error) {
	query := `
		SELECT c.id, c.guild_id, c.name, c.is_active, c.created_at, c.updated_at
		FROM editor_assignments a
		JOIN creators c ON c.id = a.creator_id
		WHERE a.editor_id = $1 AND c.guild_id = $2 AND c.is_active
		ORDER BY LOWER(c.name), c.id
	`

	rows, err := r.q.Query(ctx, query, editorID, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query creators for editor: %w", err)
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

// ListEditorsForCreator returns active editors linked to a creator, ordered by name
func (r *AssignmentRepository) ListEditorsForCreator(ctx context.Context, creatorID int64) ([]*entities.StaffMember, error) {
	query := `
		SELECT s.id, s.guild_id, s.kind, s.discord_id, s.display_name, s.is_active, s.created_at, s.updated_at
		FROM editor_assignments a
		JOIN staff_members s ON s.id = a.editor_id
		WHERE a.creator_id = $1 AND s.guild_id = $2 AND s.is_active
		ORDER BY LOWER(s.display_name), s.id
	`

	rows, err := r.q.Query(ctx, query, creatorID, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query editors for creator: %w", err)
	}
	defer rows.Close()

	var editors []*entities.StaffMember
	for rows.Next() {
		editor, err := scanStaffMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan editor: %w", err)
		}
		editors = append(editors, editor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating editors: %w", err)
	}

	return editors, nil
}
