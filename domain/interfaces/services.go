package interfaces

import (
	"context"
	"time"

	"thumbnailbot/domain/entities"

	"github.com/google/uuid"
)

// RosterResult describes how an add operation changed the roster
type RosterResult string

const (
	RosterCreated     RosterResult = "created"
	RosterReactivated RosterResult = "reactivated"
)

// RosterService manages creators, staff and categories with soft deletion
type RosterService interface {
	// AddCreator creates a creator or reactivates an inactive one with the same name
	AddCreator(ctx context.Context, name string) (*entities.Creator, RosterResult, error)
	RemoveCreator(ctx context.Context, name string) error
	ListCreators(ctx context.Context) ([]*entities.Creator, error)
	SearchCreators(ctx context.Context, term string) ([]*entities.Creator, error)

	// AddStaff creates or reactivates an editor, designer or overseer.
	// An empty displayName keeps the stored snapshot on reactivation.
	AddStaff(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) (*entities.StaffMember, RosterResult, error)
	RemoveStaff(ctx context.Context, kind entities.StaffKind, discordID int64) error
	ListStaff(ctx context.Context, kind entities.StaffKind) ([]*entities.StaffMember, error)

	// RefreshDisplayName updates the display name snapshot of an active staff row
	RefreshDisplayName(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) error

	// AddCategory creates or reactivates a category, applying channelID when given
	AddCategory(ctx context.Context, name string, channelID *int64) (*entities.Category, RosterResult, error)
	RemoveCategory(ctx context.Context, name string) error
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	SearchCategories(ctx context.Context, term string) ([]*entities.Category, error)

	// SetCategoryChannel routes an active category to a channel
	SetCategoryChannel(ctx context.Context, name string, channelID int64) (*entities.Category, error)
}

// AssignmentService manages editor to creator links
type AssignmentService interface {
	Assign(ctx context.Context, editorDiscordID int64, creatorName string) error
	Unassign(ctx context.Context, editorDiscordID int64, creatorName string) error
	CreatorsFor(ctx context.Context, editorDiscordID int64) ([]*entities.Creator, error)
	EditorsFor(ctx context.Context, creatorName string) ([]*entities.StaffMember, error)

	// IsAssigned reports whether an active editor is linked to the creator
	IsAssigned(ctx context.Context, editorDiscordID, creatorID int64) (bool, error)
}

// Destination is where a new request control gets posted
type Destination struct {
	ChannelID     int64
	Category      string // label kept on the request, may be empty in single-channel mode
	SingleChannel bool
}

// RoutingResolver decides the destination channel for a request
type RoutingResolver interface {
	ResolveDestination(ctx context.Context, guildID int64, categoryName string) (*Destination, error)

	// CheckPanelReady verifies the guild can accept requests from the panel
	CheckPanelReady(ctx context.Context, guildID int64) (*entities.GuildConfig, error)
}

// GuildConfigService manages per-guild role ids and channel mode
type GuildConfigService interface {
	GetConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error)
	EnsureConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error)
	SetRole(ctx context.Context, guildID int64, kind entities.StaffKind, roleID int64) (*entities.GuildConfig, error)

	// ToggleSingleChannel flips single-channel mode and returns the new value
	ToggleSingleChannel(ctx context.Context, guildID int64) (bool, error)

	// SetSingleChannel sets the shared channel and enables single-channel mode
	SetSingleChannel(ctx context.Context, guildID int64, channelID int64) (*entities.GuildConfig, error)
}

// OpenRequestParams carries the inputs of a new thumbnail request
type OpenRequestParams struct {
	GuildID     int64
	ActorID     int64
	ActorName   string
	IsAdmin     bool
	CreatorName string
	SourceURL   string
	Category    string
}

// UnclaimResult carries the resources a released claim leaves behind
type UnclaimResult struct {
	Request          *entities.ThumbnailRequest
	DesignerID       int64
	PublicMessageID  *int64
	PrivateChannelID *int64
}

// SubmitResult is the outcome of a confirmed approval
type SubmitResult struct {
	Request *entities.ThumbnailRequest
	Record  *entities.ThumbnailRecord
}

// RequestService enforces the request state machine inside a single transaction.
// Every state change is a compare-and-set on the stored state.
type RequestService interface {
	Open(ctx context.Context, params OpenRequestParams) (*entities.ThumbnailRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error)
	Claim(ctx context.Context, id uuid.UUID, designerID int64, designerName string) (*entities.ThumbnailRequest, error)

	// CompensateClaim returns a claim to open when its first visible step failed
	CompensateClaim(ctx context.Context, id uuid.UUID, designerID int64) (*entities.ThumbnailRequest, error)

	Unclaim(ctx context.Context, id uuid.UUID, actorID int64, canManage bool) (*UnclaimResult, error)
	Approve(ctx context.Context, id uuid.UUID, actorID int64, isAdmin bool) (*entities.ThumbnailRequest, error)
	Confirm(ctx context.Context, id uuid.UUID, actorID int64, isAdmin bool) (*SubmitResult, error)

	// PrepareRepost checks that an open request can have its public control posted again
	PrepareRepost(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error)

	SetPublicMessage(ctx context.Context, id uuid.UUID, messageID *int64) error
	SetClaimResources(ctx context.Context, id uuid.UUID, privateChannelID, controlMessageID *int64) error
	List(ctx context.Context, state entities.RequestState, limit int) ([]*entities.ThumbnailRequest, error)
}

// ExportFile is a rendered monthly export
type ExportFile struct {
	Filename string
	Data     []byte
	Rows     int
}

// ExportService renders monthly CSV exports of completed thumbnails
type ExportService interface {
	ExportMonth(ctx context.Context, year, month int) (*ExportFile, error)
	ExportCurrentMonth(ctx context.Context, now time.Time) (*ExportFile, error)
}
