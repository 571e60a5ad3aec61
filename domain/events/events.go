package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRequestOpened    EventType = "request_opened"
	EventTypeRequestClaimed   EventType = "request_claimed"
	EventTypeRequestUnclaimed EventType = "request_unclaimed"
	EventTypeRequestSubmitted EventType = "request_submitted"
	EventTypeRosterChanged    EventType = "roster_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RequestOpenedEvent is published when a thumbnail request is persisted as open
type RequestOpenedEvent struct {
	RequestID   string `json:"request_id"`
	GuildID     int64  `json:"guild_id"`
	CreatorName string `json:"creator_name"`
	Category    string `json:"category"`
	SourceURL   string `json:"source_url"`
	EditorID    int64  `json:"editor_id"`
	ChannelID   int64  `json:"channel_id"`
}

func (e RequestOpenedEvent) Type() EventType {
	return EventTypeRequestOpened
}

// RequestClaimedEvent is published when a designer wins the claim
type RequestClaimedEvent struct {
	RequestID    string `json:"request_id"`
	GuildID      int64  `json:"guild_id"`
	DesignerID   int64  `json:"designer_id"`
	DesignerName string `json:"designer_name"`
	ClaimCount   int    `json:"claim_count"`
}

func (e RequestClaimedEvent) Type() EventType {
	return EventTypeRequestClaimed
}

// RequestUnclaimedEvent is published when a claimed request returns to open
type RequestUnclaimedEvent struct {
	RequestID  string `json:"request_id"`
	GuildID    int64  `json:"guild_id"`
	DesignerID int64  `json:"designer_id"`
	ActorID    int64  `json:"actor_id"`
}

func (e RequestUnclaimedEvent) Type() EventType {
	return EventTypeRequestUnclaimed
}

// RequestSubmittedEvent is published once the completion record is committed
type RequestSubmittedEvent struct {
	RequestID  string `json:"request_id"`
	GuildID    int64  `json:"guild_id"`
	RecordID   int64  `json:"record_id"`
	DesignerID int64  `json:"designer_id"`
	CreatorID  int64  `json:"creator_id"`
	Category   string `json:"category"`
	ApprovedBy int64  `json:"approved_by"`
}

func (e RequestSubmittedEvent) Type() EventType {
	return EventTypeRequestSubmitted
}

// RosterAction describes what happened to a roster entry
type RosterAction string

const (
	RosterActionCreated     RosterAction = "created"
	RosterActionReactivated RosterAction = "reactivated"
	RosterActionRemoved     RosterAction = "removed"
)

// RosterChangedEvent is published when a creator, staff member or category
// is added, reactivated or removed
type RosterChangedEvent struct {
	GuildID  int64        `json:"guild_id"`
	Kind     string       `json:"kind"`
	Identity string       `json:"identity"`
	Action   RosterAction `json:"action"`
}

func (e RosterChangedEvent) Type() EventType {
	return EventTypeRosterChanged
}
