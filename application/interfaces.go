package application

import (
	"context"

	"thumbnailbot/domain/entities"
)

// RequestPoster defines the Discord side effects of the request lifecycle.
// This abstraction allows the application layer to drive Discord without
// depending on the Discord API. Deleting a message or channel that no longer
// exists is not an error.
type RequestPoster interface {
	// PostOpenControl posts the public request embed with an enabled Claim button
	PostOpenControl(ctx context.Context, request *entities.ThumbnailRequest) (messageID int64, err error)

	// MarkClaimed edits the public control to a disabled "Claimed by" button
	MarkClaimed(ctx context.Context, request *entities.ThumbnailRequest) error

	// MarkCompleted edits the public control to a disabled "Completed" button
	MarkCompleted(ctx context.Context, request *entities.ThumbnailRequest) error

	// CreatePrivateChannel creates a channel visible to the claimant, the overseer role and the bot
	CreatePrivateChannel(ctx context.Context, request *entities.ThumbnailRequest, designerUsername string, overseerRoleID int64) (channelID int64, err error)

	// PostClaimControl posts the request details with Unclaim and Approve buttons
	PostClaimControl(ctx context.Context, channelID int64, request *entities.ThumbnailRequest) (messageID int64, err error)

	PinMessage(ctx context.Context, channelID, messageID int64) error

	// DisableClaimControl removes the buttons from the private control message
	DisableClaimControl(ctx context.Context, request *entities.ThumbnailRequest) error

	DeleteMessage(ctx context.Context, channelID, messageID int64) error
	DeleteChannel(ctx context.Context, channelID int64) error
}

// LifecycleMetrics records saga outcomes
type LifecycleMetrics interface {
	RecordTransition(kind entities.TransitionKind, status entities.TransitionStatus)
	RecordPlatformFailure(step string)
}

type noopLifecycleMetrics struct{}

func (noopLifecycleMetrics) RecordTransition(entities.TransitionKind, entities.TransitionStatus) {}
func (noopLifecycleMetrics) RecordPlatformFailure(string)                                        {}
