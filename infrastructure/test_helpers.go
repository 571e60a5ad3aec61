package infrastructure

import (
	"sync"

	"thumbnailbot/domain/events"
)

// RecordingEventPublisher keeps every published event for assertions in tests
type RecordingEventPublisher struct {
	mu           sync.Mutex
	events       []events.Event
	PublishError error
}

// NewRecordingEventPublisher creates an empty recording publisher
func NewRecordingEventPublisher() *RecordingEventPublisher {
	return &RecordingEventPublisher{}
}

// Publish records the event or returns PublishError
func (r *RecordingEventPublisher) Publish(event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PublishError != nil {
		return r.PublishError
	}
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events
func (r *RecordingEventPublisher) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// EventTypes returns the recorded event types in publish order
func (r *RecordingEventPublisher) EventTypes() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.EventType, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.Type())
	}
	return types
}
