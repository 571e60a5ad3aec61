package repository

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"

	"github.com/google/uuid"
)

// RequestTransitionRepository implements the request saga log
type RequestTransitionRepository struct {
	q       Queryable
	guildID int64
}

// NewRequestTransitionRepositoryScoped creates a new transition repository with guild scope
func NewRequestTransitionRepositoryScoped(tx Queryable, guildID int64) *RequestTransitionRepository {
	return &RequestTransitionRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Start records a pending transition for a request
func (r *RequestTransitionRepository) Start(ctx context.Context, requestID uuid.UUID, kind entities.TransitionKind, actorID int64) (*entities.RequestTransition, error) {
	query := `
		INSERT INTO request_transitions (request_id, kind, status, actor_id)
		SELECT id, $3, 'pending', $4
		FROM thumbnail_requests
		WHERE guild_id = $1 AND id = $2
		RETURNING id, request_id, kind, status, actor_id, failed_step, error, started_at, finished_at
	`

	var t entities.RequestTransition
	err := r.q.QueryRow(ctx, query, r.guildID, requestID, kind, actorID).Scan(
		&t.ID,
		&t.RequestID,
		&t.Kind,
		&t.Status,
		&t.ActorID,
		&t.FailedStep,
		&t.Error,
		&t.StartedAt,
		&t.FinishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s transition: %w", kind, err)
	}
	return &t, nil
}

// Finish records the terminal status of a transition
func (r *RequestTransitionRepository) Finish(ctx context.Context, id int64, status entities.TransitionStatus, failedStep, errMsg *string) error {
	query := `
		UPDATE request_transitions
		SET status = $2, failed_step = $3, error = $4, finished_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, id, status, failedStep, errMsg)
	if err != nil {
		return fmt.Errorf("failed to finish transition: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transition %d not found", id)
	}
	return nil
}

// ListForRequest returns the transitions of a request in start order
func (r *RequestTransitionRepository) ListForRequest(ctx context.Context, requestID uuid.UUID) ([]*entities.RequestTransition, error) {
	query := `
		SELECT t.id, t.request_id, t.kind, t.status, t.actor_id, t.failed_step, t.error, t.started_at, t.finished_at
		FROM request_transitions t
		JOIN thumbnail_requests r ON r.id = t.request_id
		WHERE r.guild_id = $1 AND t.request_id = $2
		ORDER BY t.id
	`

	rows, err := r.q.Query(ctx, query, r.guildID, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer rows.Close()

	var transitions []*entities.RequestTransition
	for rows.Next() {
		var t entities.RequestTransition
		if err := rows.Scan(
			&t.ID,
			&t.RequestID,
			&t.Kind,
			&t.Status,
			&t.ActorID,
			&t.FailedStep,
			&t.Error,
			&t.StartedAt,
			&t.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		transitions = append(transitions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transitions: %w", err)
	}

	return transitions, nil
}
