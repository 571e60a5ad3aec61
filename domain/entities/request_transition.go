package entities

import (
	"time"

	"github.com/google/uuid"
)

// TransitionKind names the lifecycle step a saga entry tracks
type TransitionKind string

const (
	TransitionPost    TransitionKind = "post"
	TransitionClaim   TransitionKind = "claim"
	TransitionUnclaim TransitionKind = "unclaim"
	TransitionSubmit  TransitionKind = "submit"
	TransitionRepost  TransitionKind = "repost"
)

// TransitionStatus is the outcome of a saga entry
type TransitionStatus string

const (
	TransitionStatusPending     TransitionStatus = "pending"
	TransitionStatusCompleted   TransitionStatus = "completed"
	TransitionStatusFailed      TransitionStatus = "failed"
	TransitionStatusCompensated TransitionStatus = "compensated"
)

// RequestTransition records an intended state change and how its external steps went
type RequestTransition struct {
	ID         int64            `db:"id"`
	RequestID  uuid.UUID        `db:"request_id"`
	Kind       TransitionKind   `db:"kind"`
	Status     TransitionStatus `db:"status"`
	ActorID    int64            `db:"actor_id"`
	FailedStep *string          `db:"failed_step"`
	Error      *string          `db:"error"`
	StartedAt  time.Time        `db:"started_at"`
	FinishedAt *time.Time       `db:"finished_at"`
}

// IsFinished checks if the transition reached a terminal status
func (t *RequestTransition) IsFinished() bool {
	return t.Status != TransitionStatusPending
}
