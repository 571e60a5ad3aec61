package entities

import (
	"time"

	"github.com/google/uuid"
)

// RequestState represents the lifecycle state of a thumbnail request
type RequestState string

const (
	RequestStateOpen      RequestState = "open"
	RequestStateClaimed   RequestState = "claimed"
	RequestStateSubmitted RequestState = "submitted"
)

// IsValid checks if the state is a known request state
func (s RequestState) IsValid() bool {
	switch s {
	case RequestStateOpen, RequestStateClaimed, RequestStateSubmitted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Claimed may fall back to Open any number of times; Submitted is terminal.
func (s RequestState) CanTransitionTo(next RequestState) bool {
	switch s {
	case RequestStateOpen:
		return next == RequestStateClaimed
	case RequestStateClaimed:
		return next == RequestStateOpen || next == RequestStateSubmitted
	default:
		return false
	}
}

// ThumbnailRequest is a persisted request moving through Open, Claimed and Submitted.
// Message and channel ids point at the live Discord controls rendered from this row.
type ThumbnailRequest struct {
	ID               uuid.UUID    `db:"id"`
	GuildID          int64        `db:"guild_id"`
	CreatorID        int64        `db:"creator_id"`
	CreatorName      string       `db:"creator_name"`
	Category         string       `db:"category"`
	SourceURL        string       `db:"source_url"`
	EditorDiscordID  int64        `db:"editor_discord_id"`
	EditorName       string       `db:"editor_name"`
	State            RequestState `db:"state"`
	ChannelID        int64        `db:"channel_id"` // Destination chosen at send time
	MessageID        *int64       `db:"message_id"` // Public claim control
	DesignerID       *int64       `db:"designer_discord_id"`
	DesignerName     *string      `db:"designer_name"`
	PrivateChannelID *int64       `db:"private_channel_id"`
	ControlMessageID *int64       `db:"control_message_id"`
	ClaimCount       int          `db:"claim_count"`
	RecordID         *int64       `db:"record_id"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
	ClaimedAt        *time.Time   `db:"claimed_at"`
	SubmittedAt      *time.Time   `db:"submitted_at"`
}

// NewThumbnailRequest creates an Open request with a fresh identifier
func NewThumbnailRequest(guildID int64, creator *Creator, category, sourceURL string, editorID int64, editorName string, channelID int64) *ThumbnailRequest {
	return &ThumbnailRequest{
		ID:              uuid.New(),
		GuildID:         guildID,
		CreatorID:       creator.ID,
		CreatorName:     creator.Name,
		Category:        category,
		SourceURL:       sourceURL,
		EditorDiscordID: editorID,
		EditorName:      editorName,
		State:           RequestStateOpen,
		ChannelID:       channelID,
	}
}

// IsOpen checks if the request is waiting for a designer
func (r *ThumbnailRequest) IsOpen() bool {
	return r.State == RequestStateOpen
}

// IsClaimed checks if a designer currently holds the request
func (r *ThumbnailRequest) IsClaimed() bool {
	return r.State == RequestStateClaimed
}

// IsSubmitted checks if the request has been recorded
func (r *ThumbnailRequest) IsSubmitted() bool {
	return r.State == RequestStateSubmitted
}

// IsClaimedBy checks if the given user is the current claimant
func (r *ThumbnailRequest) IsClaimedBy(discordID int64) bool {
	return r.IsClaimed() && r.DesignerID != nil && *r.DesignerID == discordID
}

// HasPublicMessage checks if the public control message is known
func (r *ThumbnailRequest) HasPublicMessage() bool {
	return r.MessageID != nil && *r.MessageID > 0
}

// HasPrivateChannel checks if a private work channel is known
func (r *ThumbnailRequest) HasPrivateChannel() bool {
	return r.PrivateChannelID != nil && *r.PrivateChannelID > 0
}

// ClaimantName returns the designer name or an empty string
func (r *ThumbnailRequest) ClaimantName() string {
	if r.DesignerName == nil {
		return ""
	}
	return *r.DesignerName
}
