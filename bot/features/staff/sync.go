package staff

import (
	"context"
	"fmt"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// MemberSource lists the current members of a guild
type MemberSource interface {
	Snapshots(ctx context.Context, guildID int64) ([]application.MemberSnapshot, error)
	Invalidate(guildID int64)
}

// handleSync handles /staff sync by applying role membership to every guild member
func (f *Feature) handleSync(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer staff sync: %v", err)
		return
	}

	ctx := context.Background()
	f.members.Invalidate(guildID)
	members, err := f.members.Snapshots(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	summary, err := f.rosterSync.SyncGuild(ctx, guildID, members)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	common.FollowUpWithSuccess(s, i, SyncMessage(summary), true)
}

// SyncMessage summarizes a roster sync
func SyncMessage(summary *application.SyncSummary) string {
	return fmt.Sprintf("Scanned %d members: %d added, %d reactivated.",
		summary.MembersScanned, summary.Created, summary.Reactivated)
}
