package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RateLimiter spaces out member list calls
type RateLimiter struct {
	mutex       sync.Mutex
	lastCall    time.Time
	minInterval time.Duration
}

// Wait waits if necessary to respect rate limits
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	elapsed := time.Since(rl.lastCall)
	if elapsed < rl.minInterval {
		waitTime := rl.minInterval - elapsed
		log.Debugf("Rate limiting: waiting %v before next API call", waitTime)

		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	rl.lastCall = time.Now()
	return nil
}

// MemberDirectory lists guild members for roster sync with a short-lived cache
type MemberDirectory struct {
	session *discordgo.Session

	memberCache map[int64][]application.MemberSnapshot
	cacheExpiry map[int64]time.Time
	cacheMutex  sync.RWMutex
	cacheTTL    time.Duration

	rateLimiter *RateLimiter
	maxRetries  int
}

// NewMemberDirectory creates a new member directory
func NewMemberDirectory(session *discordgo.Session) *MemberDirectory {
	return &MemberDirectory{
		session:     session,
		memberCache: make(map[int64][]application.MemberSnapshot),
		cacheExpiry: make(map[int64]time.Time),
		cacheTTL:    5 * time.Minute,
		rateLimiter: &RateLimiter{
			minInterval: 1 * time.Second,
		},
		maxRetries: 3,
	}
}

// Snapshots returns every non-bot member of a guild
func (d *MemberDirectory) Snapshots(ctx context.Context, guildID int64) ([]application.MemberSnapshot, error) {
	d.cacheMutex.RLock()
	members, exists := d.memberCache[guildID]
	expiry := d.cacheExpiry[guildID]
	d.cacheMutex.RUnlock()

	if exists && time.Now().Before(expiry) {
		return members, nil
	}

	members, err := d.fetchMembers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	d.cacheMutex.Lock()
	d.memberCache[guildID] = members
	d.cacheExpiry[guildID] = time.Now().Add(d.cacheTTL)
	d.cacheMutex.Unlock()

	log.Debugf("Cached %d members for guild %d", len(members), guildID)
	return members, nil
}

// Invalidate drops the cached members of a guild
func (d *MemberDirectory) Invalidate(guildID int64) {
	d.cacheMutex.Lock()
	delete(d.memberCache, guildID)
	delete(d.cacheExpiry, guildID)
	d.cacheMutex.Unlock()
}

// fetchMembers pages through the member list of a guild
func (d *MemberDirectory) fetchMembers(ctx context.Context, guildID int64) ([]application.MemberSnapshot, error) {
	guildIDStr := strconv.FormatInt(guildID, 10)

	var snapshots []application.MemberSnapshot
	after := ""

	for {
		if err := d.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		batch, err := d.fetchBatchWithRetry(ctx, guildIDStr, after)
		if err != nil {
			return nil, err
		}

		for _, member := range batch {
			if member == nil || member.User == nil || member.User.Bot {
				continue
			}
			snapshot, err := common.MemberSnapshot(member)
			if err != nil {
				log.WithError(err).WithField("user", member.User.ID).Warn("Skipping member with invalid id")
				continue
			}
			snapshots = append(snapshots, snapshot)
		}

		if len(batch) < common.GuildMembersPageSize {
			log.Debugf("Fetched all %d members for guild %d", len(snapshots), guildID)
			return snapshots, nil
		}

		last := batch[len(batch)-1]
		if last == nil || last.User == nil {
			log.Warnf("Unable to determine next pagination token, stopping at %d members", len(snapshots))
			return snapshots, nil
		}
		after = last.User.ID
	}
}

// fetchBatchWithRetry fetches one page of members with exponential backoff on rate limits
func (d *MemberDirectory) fetchBatchWithRetry(ctx context.Context, guildID, after string) ([]*discordgo.Member, error) {
	for attempt := 0; ; attempt++ {
		batch, err := d.session.GuildMembers(guildID, after, common.GuildMembersPageSize, discordgo.WithContext(ctx))
		if err == nil {
			return batch, nil
		}

		if !isRateLimitError(err) {
			return nil, fmt.Errorf("failed to fetch guild members: %w", err)
		}
		if attempt >= d.maxRetries {
			return nil, fmt.Errorf("exceeded max retries for rate limit: %w", err)
		}

		waitTime := time.Duration(1<<uint(attempt)) * time.Second
		log.Warnf("Hit rate limit, waiting %v before retry %d/%d", waitTime, attempt+1, d.maxRetries)

		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// isRateLimitError checks if an error is a Discord rate limit response
func isRateLimitError(err error) bool {
	var rateLimit *discordgo.RateLimitError
	if errors.As(err, &rateLimit) {
		return true
	}
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusTooManyRequests
}
