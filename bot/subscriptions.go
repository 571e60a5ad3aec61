package bot

import (
	"context"
	"fmt"

	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// EventMetrics is the part of the metrics provider fed by consumed events
type EventMetrics interface {
	RecordThumbnailSubmitted(category string)
	RecordRosterChange(kind, action string)
}

// RegisterBotSubscriptions registers the bot's consumers of its own lifecycle and roster events
func RegisterBotSubscriptions(subscriber interfaces.EventSubscriber, metrics EventMetrics) error {
	if err := subscriber.Subscribe(events.EventTypeRequestSubmitted,
		func(ctx context.Context, event events.Event) error {
			return handleRequestSubmitted(ctx, event, metrics)
		}); err != nil {
		return fmt.Errorf("failed to subscribe to request submitted events: %w", err)
	}

	if err := subscriber.Subscribe(events.EventTypeRosterChanged,
		func(ctx context.Context, event events.Event) error {
			return handleRosterChanged(ctx, event, metrics)
		}); err != nil {
		return fmt.Errorf("failed to subscribe to roster changed events: %w", err)
	}

	log.Info("Bot event subscriptions registered successfully")
	return nil
}

func handleRequestSubmitted(ctx context.Context, event events.Event, metrics EventMetrics) error {
	submitted, ok := event.(*events.RequestSubmittedEvent)
	if !ok {
		return fmt.Errorf("received %T in request submitted handler", event)
	}

	log.WithFields(log.Fields{
		"guild":    submitted.GuildID,
		"request":  submitted.RequestID,
		"record":   submitted.RecordID,
		"category": submitted.Category,
	}).Debug("Thumbnail submitted")

	metrics.RecordThumbnailSubmitted(submitted.Category)
	return nil
}

func handleRosterChanged(ctx context.Context, event events.Event, metrics EventMetrics) error {
	changed, ok := event.(*events.RosterChangedEvent)
	if !ok {
		return fmt.Errorf("received %T in roster changed handler", event)
	}

	log.WithFields(log.Fields{
		"guild":    changed.GuildID,
		"kind":     changed.Kind,
		"identity": changed.Identity,
		"action":   changed.Action,
	}).Debug("Roster changed")

	metrics.RecordRosterChange(changed.Kind, string(changed.Action))
	return nil
}
