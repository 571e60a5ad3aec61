package application

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Names of the Discord steps a transition can fail on
const (
	StepPostPublicControl    = "post public control"
	StepUpdatePublicControl  = "update public control"
	StepDeletePublicControl  = "delete public control"
	StepCreatePrivateChannel = "create private channel"
	StepPostClaimControl     = "post claim control"
	StepPinClaimControl      = "pin claim control"
	StepDisableClaimControl  = "disable claim control"
	StepDeletePrivateChannel = "delete private channel"
)

// ClaimInput identifies the designer claiming a request
type ClaimInput struct {
	GuildID          int64
	RequestID        uuid.UUID
	DesignerID       int64
	DesignerName     string // Display name shown on the public control
	DesignerUsername string // Used to name the private channel
}

// RequestLifecycle drives thumbnail requests through their states and the
// matching Discord side effects. Every state change commits before any
// Discord call is made, and each Discord phase is logged as a transition.
//
// Methods that return both a request and a *services.PlatformActionFailedError
// committed their state change; only the reported step and the ones after it
// did not happen.
type RequestLifecycle struct {
	uowFactory UnitOfWorkFactory
	poster     RequestPoster
	metrics    LifecycleMetrics
}

// NewRequestLifecycle creates a new request lifecycle orchestrator
func NewRequestLifecycle(uowFactory UnitOfWorkFactory, poster RequestPoster, metrics LifecycleMetrics) *RequestLifecycle {
	if metrics == nil {
		metrics = noopLifecycleMetrics{}
	}
	return &RequestLifecycle{
		uowFactory: uowFactory,
		poster:     poster,
		metrics:    metrics,
	}
}

// Open persists a new request and posts its public control
func (l *RequestLifecycle) Open(ctx context.Context, params interfaces.OpenRequestParams) (*entities.ThumbnailRequest, error) {
	var request *entities.ThumbnailRequest
	var transition *entities.RequestTransition
	err := l.inTransaction(ctx, params.GuildID, func(uow UnitOfWork) error {
		var err error
		request, err = newRequestService(uow).Open(ctx, params)
		if err != nil {
			return err
		}
		transition, err = uow.RequestTransitionRepository().Start(ctx, request.ID, entities.TransitionPost, params.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	messageID, err := l.poster.PostOpenControl(ctx, request)
	if err != nil {
		return request, l.fail(ctx, request, transition, entities.TransitionStatusFailed, StepPostPublicControl, err, nil)
	}
	request.MessageID = &messageID

	err = l.finish(ctx, request.GuildID, transition, entities.TransitionStatusCompleted, nil, func(uow UnitOfWork) error {
		return newRequestService(uow).SetPublicMessage(ctx, request.ID, request.MessageID)
	})
	if err != nil {
		return request, err
	}

	log.WithFields(log.Fields{
		"guild":     request.GuildID,
		"requestID": request.ID,
		"creator":   request.CreatorName,
		"category":  request.Category,
		"channel":   request.ChannelID,
	}).Info("Thumbnail request opened")

	return request, nil
}

// Claim assigns an open request to a designer and sets up the private channel.
// When the public control cannot be updated the claim is undone and no
// request is returned.
func (l *RequestLifecycle) Claim(ctx context.Context, input ClaimInput) (*entities.ThumbnailRequest, error) {
	var request *entities.ThumbnailRequest
	var transition *entities.RequestTransition
	var overseerRoleID int64
	err := l.inTransaction(ctx, input.GuildID, func(uow UnitOfWork) error {
		var err error
		request, err = newRequestService(uow).Claim(ctx, input.RequestID, input.DesignerID, input.DesignerName)
		if err != nil {
			return err
		}

		config, err := uow.GuildConfigRepository().GetByGuildID(ctx, input.GuildID)
		if err != nil {
			return fmt.Errorf("failed to get guild config: %w", err)
		}
		if config != nil && config.HasOverseerRole() {
			overseerRoleID = *config.OverseerRoleID
		}

		transition, err = uow.RequestTransitionRepository().Start(ctx, request.ID, entities.TransitionClaim, input.DesignerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if request.HasPublicMessage() {
		if err := l.poster.MarkClaimed(ctx, request); err != nil {
			return nil, l.fail(ctx, request, transition, entities.TransitionStatusCompensated, StepUpdatePublicControl, err, func(uow UnitOfWork) error {
				_, err := newRequestService(uow).CompensateClaim(ctx, request.ID, input.DesignerID)
				return err
			})
		}
	}

	step, cause := func() (string, error) {
		channelID, err := l.poster.CreatePrivateChannel(ctx, request, input.DesignerUsername, overseerRoleID)
		if err != nil {
			return StepCreatePrivateChannel, err
		}
		request.PrivateChannelID = &channelID

		messageID, err := l.poster.PostClaimControl(ctx, channelID, request)
		if err != nil {
			return StepPostClaimControl, err
		}
		request.ControlMessageID = &messageID

		if err := l.poster.PinMessage(ctx, channelID, messageID); err != nil {
			return StepPinClaimControl, err
		}
		return "", nil
	}()

	storeResources := func(uow UnitOfWork) error {
		if request.PrivateChannelID == nil && request.ControlMessageID == nil {
			return nil
		}
		return newRequestService(uow).SetClaimResources(ctx, request.ID, request.PrivateChannelID, request.ControlMessageID)
	}
	if cause != nil {
		return request, l.fail(ctx, request, transition, entities.TransitionStatusFailed, step, cause, storeResources)
	}
	if err := l.finish(ctx, request.GuildID, transition, entities.TransitionStatusCompleted, nil, storeResources); err != nil {
		return request, err
	}

	log.WithFields(log.Fields{
		"guild":          request.GuildID,
		"requestID":      request.ID,
		"designer":       input.DesignerID,
		"privateChannel": *request.PrivateChannelID,
		"claimCount":     request.ClaimCount,
	}).Info("Thumbnail request claimed")

	return request, nil
}

// Unclaim returns a claimed request to open, reposts its public control and
// removes the private channel
func (l *RequestLifecycle) Unclaim(ctx context.Context, guildID int64, requestID uuid.UUID, actorID int64, canManage bool) (*entities.ThumbnailRequest, error) {
	var result *interfaces.UnclaimResult
	var transition *entities.RequestTransition
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		result, err = newRequestService(uow).Unclaim(ctx, requestID, actorID, canManage)
		if err != nil {
			return err
		}
		transition, err = uow.RequestTransitionRepository().Start(ctx, requestID, entities.TransitionUnclaim, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	request := result.Request
	step, cause := func() (string, error) {
		if result.PublicMessageID != nil {
			if err := l.poster.DeleteMessage(ctx, request.ChannelID, *result.PublicMessageID); err != nil {
				return StepDeletePublicControl, err
			}
		}
		request.MessageID = nil

		messageID, err := l.poster.PostOpenControl(ctx, request)
		if err != nil {
			return StepPostPublicControl, err
		}
		request.MessageID = &messageID

		if result.PrivateChannelID != nil {
			if err := l.poster.DeleteChannel(ctx, *result.PrivateChannelID); err != nil {
				return StepDeletePrivateChannel, err
			}
		}
		return "", nil
	}()

	storeMessage := func(uow UnitOfWork) error {
		return newRequestService(uow).SetPublicMessage(ctx, request.ID, request.MessageID)
	}
	if cause != nil {
		return request, l.fail(ctx, request, transition, entities.TransitionStatusFailed, step, cause, storeMessage)
	}
	if err := l.finish(ctx, guildID, transition, entities.TransitionStatusCompleted, nil, storeMessage); err != nil {
		return request, err
	}

	log.WithFields(log.Fields{
		"guild":     guildID,
		"requestID": request.ID,
		"designer":  result.DesignerID,
		"actor":     actorID,
	}).Info("Thumbnail request unclaimed")

	return request, nil
}

// Approve checks that a claimed request can be recorded by the actor
func (l *RequestLifecycle) Approve(ctx context.Context, guildID int64, requestID uuid.UUID, actorID int64, isAdmin bool) (*entities.ThumbnailRequest, error) {
	var request *entities.ThumbnailRequest
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		request, err = newRequestService(uow).Approve(ctx, requestID, actorID, isAdmin)
		return err
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Confirm records the thumbnail and marks the request submitted.
// The record stands even when the Discord controls cannot be updated.
func (l *RequestLifecycle) Confirm(ctx context.Context, guildID int64, requestID uuid.UUID, actorID int64, isAdmin bool) (*interfaces.SubmitResult, error) {
	var result *interfaces.SubmitResult
	var transition *entities.RequestTransition
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		result, err = newRequestService(uow).Confirm(ctx, requestID, actorID, isAdmin)
		if err != nil {
			return err
		}
		transition, err = uow.RequestTransitionRepository().Start(ctx, requestID, entities.TransitionSubmit, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	request := result.Request
	step, cause := func() (string, error) {
		if request.HasPublicMessage() {
			if err := l.poster.MarkCompleted(ctx, request); err != nil {
				return StepUpdatePublicControl, err
			}
		}
		if request.ControlMessageID != nil && request.HasPrivateChannel() {
			if err := l.poster.DisableClaimControl(ctx, request); err != nil {
				return StepDisableClaimControl, err
			}
		}
		return "", nil
	}()

	if cause != nil {
		return result, l.fail(ctx, request, transition, entities.TransitionStatusFailed, step, cause, nil)
	}
	if err := l.finish(ctx, guildID, transition, entities.TransitionStatusCompleted, nil, nil); err != nil {
		return result, err
	}

	log.WithFields(log.Fields{
		"guild":     guildID,
		"requestID": request.ID,
		"recordID":  result.Record.ID,
		"approver":  actorID,
	}).Info("Thumbnail request submitted")

	return result, nil
}

// Repost posts a fresh public control for an open request, replacing any existing one
func (l *RequestLifecycle) Repost(ctx context.Context, guildID int64, requestID uuid.UUID, actorID int64) (*entities.ThumbnailRequest, error) {
	var request *entities.ThumbnailRequest
	var transition *entities.RequestTransition
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		request, err = newRequestService(uow).PrepareRepost(ctx, requestID)
		if err != nil {
			return err
		}
		transition, err = uow.RequestTransitionRepository().Start(ctx, requestID, entities.TransitionRepost, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	step, cause := func() (string, error) {
		if request.HasPublicMessage() {
			if err := l.poster.DeleteMessage(ctx, request.ChannelID, *request.MessageID); err != nil {
				return StepDeletePublicControl, err
			}
			request.MessageID = nil
		}

		messageID, err := l.poster.PostOpenControl(ctx, request)
		if err != nil {
			return StepPostPublicControl, err
		}
		request.MessageID = &messageID
		return "", nil
	}()

	storeMessage := func(uow UnitOfWork) error {
		return newRequestService(uow).SetPublicMessage(ctx, request.ID, request.MessageID)
	}
	if cause != nil {
		return request, l.fail(ctx, request, transition, entities.TransitionStatusFailed, step, cause, storeMessage)
	}
	if err := l.finish(ctx, guildID, transition, entities.TransitionStatusCompleted, nil, storeMessage); err != nil {
		return request, err
	}
	return request, nil
}

// Get returns a request by id
func (l *RequestLifecycle) Get(ctx context.Context, guildID int64, requestID uuid.UUID) (*entities.ThumbnailRequest, error) {
	var request *entities.ThumbnailRequest
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		request, err = newRequestService(uow).Get(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// List returns the most recent requests in a state
func (l *RequestLifecycle) List(ctx context.Context, guildID int64, state entities.RequestState, limit int) ([]*entities.ThumbnailRequest, error) {
	var requests []*entities.ThumbnailRequest
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		requests, err = newRequestService(uow).List(ctx, state, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Transitions returns the saga log of a request
func (l *RequestLifecycle) Transitions(ctx context.Context, guildID int64, requestID uuid.UUID) ([]*entities.RequestTransition, error) {
	var transitions []*entities.RequestTransition
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		var err error
		transitions, err = uow.RequestTransitionRepository().ListForRequest(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return transitions, nil
}

// fail records a failed Discord step and returns it as a PlatformActionFailedError
func (l *RequestLifecycle) fail(
	ctx context.Context,
	request *entities.ThumbnailRequest,
	transition *entities.RequestTransition,
	status entities.TransitionStatus,
	step string,
	cause error,
	apply func(uow UnitOfWork) error,
) error {
	l.metrics.RecordPlatformFailure(step)

	fields := log.Fields{
		"guild":      request.GuildID,
		"requestID":  request.ID,
		"transition": transition.Kind,
		"step":       step,
		"status":     status,
	}
	log.WithFields(fields).WithError(cause).Error("Discord step failed during request transition")

	failure := &stepFailure{step: step, cause: cause}
	if err := l.finish(ctx, request.GuildID, transition, status, failure, apply); err != nil {
		log.WithFields(fields).WithError(err).Error("Failed to record transition failure")
	}

	return &services.PlatformActionFailedError{Step: step, Err: cause}
}

type stepFailure struct {
	step  string
	cause error
}

// finish applies follow-up writes and closes the transition in one transaction
func (l *RequestLifecycle) finish(
	ctx context.Context,
	guildID int64,
	transition *entities.RequestTransition,
	status entities.TransitionStatus,
	failure *stepFailure,
	apply func(uow UnitOfWork) error,
) error {
	err := l.inTransaction(ctx, guildID, func(uow UnitOfWork) error {
		if apply != nil {
			if err := apply(uow); err != nil {
				return err
			}
		}

		var failedStep, message *string
		if failure != nil {
			step, text := failure.step, failure.cause.Error()
			failedStep, message = &step, &text
		}
		return uow.RequestTransitionRepository().Finish(ctx, transition.ID, status, failedStep, message)
	})
	if err != nil {
		return fmt.Errorf("failed to finish %s transition: %w", transition.Kind, err)
	}

	l.metrics.RecordTransition(transition.Kind, status)
	return nil
}

// inTransaction runs fn in a guild unit of work and commits when it succeeds
func (l *RequestLifecycle) inTransaction(ctx context.Context, guildID int64, fn func(uow UnitOfWork) error) error {
	uow := l.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func newRequestService(uow UnitOfWork) interfaces.RequestService {
	return services.NewRequestService(
		uow.ThumbnailRequestRepository(),
		uow.ThumbnailRecordRepository(),
		uow.CreatorRepository(),
		uow.StaffRepository(),
		uow.CategoryRepository(),
		uow.AssignmentRepository(),
		uow.GuildConfigRepository(),
		uow.EventBus(),
	)
}
