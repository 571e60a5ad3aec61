package bot

import (
	"context"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	b.applyMember(m.GuildID, m.Member, func(snapshot *application.MemberSnapshot) {})
}

// handleMemberUpdate removes rosters only for roles the member was seen
// losing. Without a cached before state the update can only add.
func (b *Bot) handleMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	b.applyMember(m.GuildID, m.Member, func(snapshot *application.MemberSnapshot) {
		snapshot.LostRoleIDs = common.LostRoles(m.BeforeUpdate, m.Member)
	})
}

// handleMemberRemove drops a departed member from every roster
func (b *Bot) handleMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.Member == nil || m.User == nil {
		return
	}
	departed := &discordgo.Member{User: m.User}
	b.applyMember(m.GuildID, departed, func(snapshot *application.MemberSnapshot) {
		snapshot.Left = true
	})
}

// applyMember runs the roster rule for one member. Bots never join a roster.
func (b *Bot) applyMember(guildIDStr string, member *discordgo.Member, observe func(*application.MemberSnapshot)) {
	if member == nil || member.User == nil || member.User.Bot {
		return
	}

	guildID, err := common.GuildID(guildIDStr)
	if err != nil {
		log.WithError(err).Warn("Member event without a valid guild")
		return
	}

	snapshot, err := common.MemberSnapshot(member)
	if err != nil {
		log.WithError(err).Warn("Skipping member event")
		return
	}
	observe(&snapshot)

	ctx := context.Background()
	changes, err := b.rosterSync.ApplyMember(ctx, guildID, snapshot)
	if err != nil {
		log.WithFields(log.Fields{
			"guild": guildID,
			"user":  snapshot.UserID,
		}).WithError(err).Error("Failed to apply member roles to rosters")
		return
	}
	b.members.Invalidate(guildID)

	logRosterChanges(guildID, changes)
}

func logRosterChanges(guildID int64, changes []application.RosterChange) {
	for _, change := range changes {
		log.WithFields(log.Fields{
			"guild":  guildID,
			"user":   change.UserID,
			"kind":   change.Kind,
			"action": change.Action,
		}).Info("Roster updated from member roles")
	}
}
