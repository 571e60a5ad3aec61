package observability

// Metric name prefixes
const (
	MetricPrefix = "thumbnailbot"
)

// Metric names
const (
	// Discord metrics
	InteractionsTotal = MetricPrefix + ".discord.interactions_total"

	// Request lifecycle metrics
	TransitionsTotal      = MetricPrefix + ".requests.transitions_total"
	PlatformFailuresTotal = MetricPrefix + ".requests.platform_failures_total"
	ThumbnailsSubmitted   = MetricPrefix + ".requests.submitted_total"

	// Export metrics
	ExportRowsTotal = MetricPrefix + ".export.rows_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Roster metrics
	RosterChangesTotal = MetricPrefix + ".roster.changes_total"
)

// Label keys
const (
	LabelType      = "type"
	LabelName      = "name"
	LabelEventType = "event_type"
	LabelKind      = "kind"
	LabelStatus    = "status"
	LabelStep      = "step"
	LabelAction    = "action"
	LabelCategory  = "category"
)

// Interaction types for Discord
const (
	InteractionTypeCommand      = "command"
	InteractionTypeComponent    = "component"
	InteractionTypeModal        = "modal"
	InteractionTypeAutocomplete = "autocomplete"
)
