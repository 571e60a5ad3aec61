package interfaces

import (
	"context"
	"time"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"

	"github.com/google/uuid"
)

// GuildConfigRepository defines the interface for guild configuration data access
type GuildConfigRepository interface {
	// GetByGuildID returns the guild configuration or nil when none exists
	GetByGuildID(ctx context.Context, guildID int64) (*entities.GuildConfig, error)

	// GetOrCreate retrieves the guild configuration or creates a default one
	GetOrCreate(ctx context.Context, guildID int64) (*entities.GuildConfig, error)

	// Update persists role ids and channel mode for a guild
	Update(ctx context.Context, config *entities.GuildConfig) error

	// GetGuildsWithRoles returns the guilds that configured at least one staff role
	GetGuildsWithRoles(ctx context.Context) ([]int64, error)
}

// CreatorRepository defines the interface for creator data access
type CreatorRepository interface {
	// GetByName returns the creator with the given name (case-insensitive) in any state, or nil
	GetByName(ctx context.Context, name string) (*entities.Creator, error)

	// GetActiveByName returns the active creator with the given name, or nil
	GetActiveByName(ctx context.Context, name string) (*entities.Creator, error)

	// GetByID returns the creator with the given id, or nil
	GetByID(ctx context.Context, id int64) (*entities.Creator, error)

	Create(ctx context.Context, name string) (*entities.Creator, error)
	Update(ctx context.Context, creator *entities.Creator) error

	// ListActive returns active creators ordered by name, then id
	ListActive(ctx context.Context) ([]*entities.Creator, error)

	// SearchActive returns active creators whose name contains term (case-insensitive)
	SearchActive(ctx context.Context, term string, limit int) ([]*entities.Creator, error)
}

// StaffRepository defines the interface for editor, designer and overseer data access
type StaffRepository interface {
	// GetByDiscordID returns the staff row of the given kind in any state, or nil
	GetByDiscordID(ctx context.Context, kind entities.StaffKind, discordID int64) (*entities.StaffMember, error)

	// GetActiveByDiscordID returns the active staff row of the given kind, or nil
	GetActiveByDiscordID(ctx context.Context, kind entities.StaffKind, discordID int64) (*entities.StaffMember, error)

	GetByID(ctx context.Context, id int64) (*entities.StaffMember, error)
	Create(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) (*entities.StaffMember, error)
	Update(ctx context.Context, member *entities.StaffMember) error

	// ListActive returns active staff of a kind ordered by display name, then id
	ListActive(ctx context.Context, kind entities.StaffKind) ([]*entities.StaffMember, error)

	// SearchActive returns active staff of a kind whose display name contains term
	SearchActive(ctx context.Context, kind entities.StaffKind, term string, limit int) ([]*entities.StaffMember, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// GetByName returns the category with the given normalized name in any state, or nil
	GetByName(ctx context.Context, name string) (*entities.Category, error)

	// GetActiveByName returns the active category with the given normalized name, or nil
	GetActiveByName(ctx context.Context, name string) (*entities.Category, error)

	Create(ctx context.Context, name string, channelID *int64) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	ListActive(ctx context.Context) ([]*entities.Category, error)
	SearchActive(ctx context.Context, term string, limit int) ([]*entities.Category, error)
	CountActive(ctx context.Context) (int, error)
}

// AssignmentRepository defines the interface for editor to creator links
type AssignmentRepository interface {
	Exists(ctx context.Context, editorID, creatorID int64) (bool, error)
	Create(ctx context.Context, editorID, creatorID int64) error

	// Delete removes a link and reports whether one existed
	Delete(ctx context.Context, editorID, creatorID int64) (bool, error)

	// ListCreatorsForEditor returns active creators linked to an editor
	ListCreatorsForEditor(ctx context.Context, editorID int64) ([]*entities.Creator, error)

	// ListEditorsForCreator returns active editors linked to a creator
	ListEditorsForCreator(ctx context.Context, creatorID int64) ([]*entities.StaffMember, error)
}

// ThumbnailRequestRepository defines the interface for thumbnail request data access
type ThumbnailRequestRepository interface {
	Create(ctx context.Context, request *entities.ThumbnailRequest) error

	// GetByID returns the request or nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error)

	// UpdateIfState writes the request's lifecycle fields only when the stored
	// state still equals expected. Returns false when another writer got there first.
	UpdateIfState(ctx context.Context, request *entities.ThumbnailRequest, expected entities.RequestState) (bool, error)

	// SetPublicMessage stores the id of the live public control message
	SetPublicMessage(ctx context.Context, id uuid.UUID, messageID *int64) error

	// SetClaimResources stores the private channel and control message ids
	SetClaimResources(ctx context.Context, id uuid.UUID, privateChannelID, controlMessageID *int64) error

	// ListByState returns requests in a state, newest first
	ListByState(ctx context.Context, state entities.RequestState, limit int) ([]*entities.ThumbnailRequest, error)
}

// RequestTransitionRepository defines the interface for the request saga log
type RequestTransitionRepository interface {
	Start(ctx context.Context, requestID uuid.UUID, kind entities.TransitionKind, actorID int64) (*entities.RequestTransition, error)

	// Finish records the final status and, for failures, the failing step and error text
	Finish(ctx context.Context, id int64, status entities.TransitionStatus, failedStep, errMsg *string) error

	ListForRequest(ctx context.Context, requestID uuid.UUID) ([]*entities.RequestTransition, error)
}

// ThumbnailRecordRepository defines the interface for completed thumbnail records
type ThumbnailRecordRepository interface {
	Create(ctx context.Context, record *entities.ThumbnailRecord) error

	// GetByRequestID returns the record created for a request, or nil
	GetByRequestID(ctx context.Context, requestID uuid.UUID) (*entities.ThumbnailRecord, error)

	// ListForExport returns records created in [from, to) joined with designer
	// and creator names, ordered by created_at then id
	ListForExport(ctx context.Context, from, to time.Time) ([]*entities.ThumbnailRecordExportRow, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// EventSubscriber delivers published events of one type to a handler
type EventSubscriber interface {
	Subscribe(eventType events.EventType, handler func(context.Context, events.Event) error) error
}
