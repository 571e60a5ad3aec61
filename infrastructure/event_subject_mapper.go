package infrastructure

import (
	"fmt"

	"thumbnailbot/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

var eventSubjects = map[events.EventType]string{
	events.EventTypeRequestOpened:    "thumbnails.request.opened",
	events.EventTypeRequestClaimed:   "thumbnails.request.claimed",
	events.EventTypeRequestUnclaimed: "thumbnails.request.unclaimed",
	events.EventTypeRequestSubmitted: "thumbnails.request.submitted",
	events.EventTypeRosterChanged:    "thumbnails.roster.changed",
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := eventSubjects[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("thumbnails.unknown.%s", event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	for eventType, s := range eventSubjects {
		if s == subject {
			return eventType
		}
	}
	return events.EventType(subject)
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"thumbnails.request.opened",
		"thumbnails.request.claimed",
		"thumbnails.request.unclaimed",
		"thumbnails.request.submitted",
		"thumbnails.roster.changed",
		"thumbnails.unknown.>",
	}
}
