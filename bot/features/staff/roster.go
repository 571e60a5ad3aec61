package staff

import (
	"context"
	"fmt"
	"strings"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const msgGuildOnly = "This command can only be used in a server"

func roster(guildID int64, uow application.UnitOfWork) interfaces.RosterService {
	return services.NewRosterService(guildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus())
}

// handleAdd handles /staff add kind user
func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	kind := entities.StaffKind(options.StringValue("kind"))
	userID, ok := options.Snowflake("user")
	if !kind.IsValid() || !ok {
		common.RespondWithError(s, i, "Pick a staff kind and a user")
		return
	}
	displayName := common.GetDisplayName(s, i.GuildID, common.FormatUserID(userID))

	ctx := context.Background()
	var result interfaces.RosterResult
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		_, result, err = roster(guildID, uow).AddStaff(ctx, kind, userID, displayName)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guild":  guildID,
		"kind":   kind,
		"user":   userID,
		"result": result,
	}).Info("Staff member added")

	verb := "added as"
	if result == interfaces.RosterReactivated {
		verb = "reactivated as"
	}
	common.RespondEphemeral(s, i, fmt.Sprintf("✅ %s %s %s.", common.GetUserMention(userID), verb, strings.ToLower(kind.Label())))
}

// handleRemove handles /staff remove kind user
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	kind := entities.StaffKind(options.StringValue("kind"))
	userID, ok := options.Snowflake("user")
	if !kind.IsValid() || !ok {
		common.RespondWithError(s, i, "Pick a staff kind and a user")
		return
	}

	ctx := context.Background()
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		return roster(guildID, uow).RemoveStaff(ctx, kind, userID)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ %s is no longer %s.", common.GetUserMention(userID), article(kind)))
}

// handleList handles /staff list [kind]
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	kinds := entities.AllStaffKinds()
	if raw := options.StringValue("kind"); raw != "" {
		kind := entities.StaffKind(raw)
		if !kind.IsValid() {
			common.RespondWithError(s, i, "Unknown staff kind")
			return
		}
		kinds = []entities.StaffKind{kind}
	}

	ctx := context.Background()
	rosters := make(map[entities.StaffKind][]*entities.StaffMember, len(kinds))
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		svc := roster(guildID, uow)
		for _, kind := range kinds {
			members, err := svc.ListStaff(ctx, kind)
			if err != nil {
				return err
			}
			rosters[kind] = members
		}
		return nil
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Staff",
		Color: common.ColorInfo,
	}
	for _, kind := range kinds {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  kind.Label() + "s",
			Value: common.Truncate(FormatStaff(rosters[kind]), common.MaxEmbedFieldLength),
		})
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// FormatStaff renders staff members as mentions with their display name snapshot
func FormatStaff(members []*entities.StaffMember) string {
	lines := make([]string, 0, len(members))
	for _, member := range members {
		lines = append(lines, fmt.Sprintf("%s (%s)", common.GetUserMention(member.DiscordID), member.DisplayName))
	}
	return common.FormatList(lines, "None")
}

func article(kind entities.StaffKind) string {
	if kind == entities.StaffKindEditor || kind == entities.StaffKindOverseer {
		return "an " + strings.ToLower(kind.Label())
	}
	return "a " + strings.ToLower(kind.Label())
}
