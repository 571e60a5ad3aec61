package repository

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const thumbnailRequestColumns = `id, guild_id, creator_id, creator_name, category, source_url,
	editor_discord_id, editor_name, state, channel_id, message_id,
	designer_discord_id, designer_name, private_channel_id, control_message_id,
	claim_count, record_id, created_at, updated_at, claimed_at, submitted_at`

// ThumbnailRequestRepository implements thumbnail request data access
type ThumbnailRequestRepository struct {
	q       Queryable
	guildID int64
}

// NewThumbnailRequestRepositoryScoped creates a new request repository with guild scope
func NewThumbnailRequestRepositoryScoped(tx Queryable, guildID int64) *ThumbnailRequestRepository {
	return &ThumbnailRequestRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a new request and fills its timestamps
func (r *ThumbnailRequestRepository) Create(ctx context.Context, request *entities.ThumbnailRequest) error {
	query := `
		INSERT INTO thumbnail_requests (
			id, guild_id, creator_id, creator_name, category, source_url,
			editor_discord_id, editor_name, state, channel_id, message_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		request.ID,
		r.guildID,
		request.CreatorID,
		request.CreatorName,
		request.Category,
		request.SourceURL,
		request.EditorDiscordID,
		request.EditorName,
		request.State,
		request.ChannelID,
		request.MessageID,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail request: %w", err)
	}

	request.GuildID = r.guildID
	return nil
}

// GetByID retrieves a request by id
func (r *ThumbnailRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error) {
	query := `SELECT ` + thumbnailRequestColumns + ` FROM thumbnail_requests WHERE guild_id = $1 AND id = $2`

	request, err := scanThumbnailRequest(r.q.QueryRow(ctx, query, r.guildID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail request: %w", err)
	}
	return request, nil
}

// UpdateIfState writes the lifecycle fields when the stored state equals expected.
// The row lock taken by UPDATE serializes racing writers; the loser re-evaluates
// the WHERE clause after the winner commits and matches no row.
func (r *ThumbnailRequestRepository) UpdateIfState(ctx context.Context, request *entities.ThumbnailRequest, expected entities.RequestState) (bool, error) {
	query := `
		UPDATE thumbnail_requests
		SET state = $4,
		    message_id = $5,
		    designer_discord_id = $6,
		    designer_name = $7,
		    private_channel_id = $8,
		    control_message_id = $9,
		    claim_count = $10,
		    record_id = $11,
		    claimed_at = $12,
		    submitted_at = $13,
		    updated_at = NOW()
		WHERE guild_id = $1 AND id = $2 AND state = $3
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		request.ID,
		expected,
		request.State,
		request.MessageID,
		request.DesignerID,
		request.DesignerName,
		request.PrivateChannelID,
		request.ControlMessageID,
		request.ClaimCount,
		request.RecordID,
		request.ClaimedAt,
		request.SubmittedAt,
	).Scan(&request.UpdatedAt)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update thumbnail request: %w", err)
	}
	return true, nil
}

// SetPublicMessage stores the live public control message id
func (r *ThumbnailRequestRepository) SetPublicMessage(ctx context.Context, id uuid.UUID, messageID *int64) error {
	query := `
		UPDATE thumbnail_requests
		SET message_id = $3, updated_at = NOW()
		WHERE guild_id = $1 AND id = $2
	`

	result, err := r.q.Exec(ctx, query, r.guildID, id, messageID)
	if err != nil {
		return fmt.Errorf("failed to set public message: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("thumbnail request %s not found", id)
	}
	return nil
}

// SetClaimResources stores the private channel and control message ids of a claimed request
func (r *ThumbnailRequestRepository) SetClaimResources(ctx context.Context, id uuid.UUID, privateChannelID, controlMessageID *int64) error {
	query := `
		UPDATE thumbnail_requests
		SET private_channel_id = COALESCE($3, private_channel_id),
		    control_message_id = COALESCE($4, control_message_id),
		    updated_at = NOW()
		WHERE guild_id = $1 AND id = $2 AND state = 'claimed'
	`

	result, err := r.q.Exec(ctx, query, r.guildID, id, privateChannelID, controlMessageID)
	if err != nil {
		return fmt.Errorf("failed to set claim resources: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("claimed thumbnail request %s not found", id)
	}
	return nil
}

// ListByState returns requests in a state, newest first
func (r *ThumbnailRequestRepository) ListByState(ctx context.Context, state entities.RequestState, limit int) ([]*entities.ThumbnailRequest, error) {
	query := `
		SELECT ` + thumbnailRequestColumns + `
		FROM thumbnail_requests
		WHERE guild_id = $1 AND state = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, r.guildID, state, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query thumbnail requests: %w", err)
	}
	defer rows.Close()

	var requests []*entities.ThumbnailRequest
	for rows.Next() {
		request, err := scanThumbnailRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thumbnail request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thumbnail requests: %w", err)
	}

	return requests, nil
}

func scanThumbnailRequest(row pgx.Row) (*entities.ThumbnailRequest, error) {
	var request entities.ThumbnailRequest
	err := row.Scan(
		&request.ID,
		&request.GuildID,
		&request.CreatorID,
		&request.CreatorName,
		&request.Category,
		&request.SourceURL,
		&request.EditorDiscordID,
		&request.EditorName,
		&request.State,
		&request.ChannelID,
		&request.MessageID,
		&request.DesignerID,
		&request.DesignerName,
		&request.PrivateChannelID,
		&request.ControlMessageID,
		&request.ClaimCount,
		&request.RecordID,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.ClaimedAt,
		&request.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}
