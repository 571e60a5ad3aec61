package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation         = "23505"
	recordRequestConstraint = "thumbnail_records_request_id_key"
)

// ThumbnailRecordRepository implements the append-only thumbnail ledger
type ThumbnailRecordRepository struct {
	q       Queryable
	guildID int64
}

// NewThumbnailRecordRepositoryScoped creates a new record repository with guild scope
func NewThumbnailRecordRepositoryScoped(tx Queryable, guildID int64) *ThumbnailRecordRepository {
	return &ThumbnailRecordRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a record and fills its id and completion timestamp.
// A second record for the same request returns services.ErrAlreadySubmitted.
func (r *ThumbnailRecordRepository) Create(ctx context.Context, record *entities.ThumbnailRecord) error {
	query := `
		INSERT INTO thumbnail_records (guild_id, request_id, designer_id, creator_id, category, source_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		record.RequestID,
		record.DesignerID,
		record.CreatorID,
		record.Category,
		record.SourceURL,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == recordRequestConstraint {
			return services.ErrAlreadySubmitted
		}
		return fmt.Errorf("failed to create thumbnail record: %w", err)
	}

	record.GuildID = r.guildID
	return nil
}

// GetByRequestID returns the record created for a request
func (r *ThumbnailRecordRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*entities.ThumbnailRecord, error) {
	query := `
		SELECT id, guild_id, request_id, designer_id, creator_id, category, source_url, created_at
		FROM thumbnail_records
		WHERE guild_id = $1 AND request_id = $2
	`

	var record entities.ThumbnailRecord
	err := r.q.QueryRow(ctx, query, r.guildID, requestID).Scan(
		&record.ID,
		&record.GuildID,
		&record.RequestID,
		&record.DesignerID,
		&record.CreatorID,
		&record.Category,
		&record.SourceURL,
		&record.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail record: %w", err)
	}
	return &record, nil
}

// ListForExport returns records created in [from, to) with designer and creator names
func (r *ThumbnailRecordRepository) ListForExport(ctx context.Context, from, to time.Time) ([]*entities.ThumbnailRecordExportRow, error) {
	query := `
		SELECT t.id, s.display_name, c.name, t.category, t.source_url, t.created_at
		FROM thumbnail_records t
		JOIN staff_members s ON s.id = t.designer_id
		JOIN creators c ON c.id = t.creator_id
		WHERE t.guild_id = $1 AND t.created_at >= $2 AND t.created_at < $3
		ORDER BY t.created_at, t.id
	`

	rows, err := r.q.Query(ctx, query, r.guildID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query thumbnail records: %w", err)
	}
	defer rows.Close()

	var result []*entities.ThumbnailRecordExportRow
	for rows.Next() {
		var row entities.ThumbnailRecordExportRow
		if err := rows.Scan(
			&row.RecordID,
			&row.DesignerName,
			&row.CreatorName,
			&row.Category,
			&row.SourceURL,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thumbnail record: %w", err)
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thumbnail records: %w", err)
	}

	return result, nil
}
