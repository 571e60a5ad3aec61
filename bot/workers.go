package bot

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// rosterSyncParallelism bounds how many guilds sync at once
const rosterSyncParallelism = 2

// StartRosterSyncWorker starts a background worker that reconciles staff rosters
// with Discord roles. Returns a cleanup function to stop the worker gracefully.
func (b *Bot) StartRosterSyncWorker(ctx context.Context, interval time.Duration) func() {
	if interval <= 0 {
		log.Info("Roster sync worker disabled")
		return func() {}
	}

	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{})

	go func() {
		log.WithField("interval", interval).Info("Roster sync worker started")

		for {
			select {
			case <-ctx.Done():
				log.Info("Roster sync worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Roster sync worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				b.syncAllGuilds(ctx)
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}

// syncAllGuilds runs a roster sync for every guild with configured roles
func (b *Bot) syncAllGuilds(ctx context.Context) {
	guildIDs, err := b.guildDiscovery.GetGuildsWithRoles(ctx)
	if err != nil {
		log.Errorf("Error getting guilds with roles: %v", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterSyncParallelism)

	for _, guildID := range guildIDs {
		g.Go(func() error {
			// One failing guild must not stop the others
			if _, err := b.SyncGuildRoster(gctx, guildID); err != nil {
				log.WithFields(log.Fields{
					"guild": guildID,
					"error": err,
				}).Error("Scheduled roster sync failed")
			}
			return nil
		})
	}

	_ = g.Wait()
}
