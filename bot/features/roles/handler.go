package roles

import (
	"context"
	"fmt"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleSetRole handles /role set-editor, set-designer and set-overseer
func (f *Feature) handleSetRole(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options, kind entities.StaffKind) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}

	roleID, ok := options.Snowflake("role")
	if !ok {
		common.RespondWithError(s, i, "Invalid role selected")
		return
	}

	ctx := context.Background()
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		_, err := services.NewGuildConfigService(uow.GuildConfigRepository()).SetRole(ctx, guildID, kind, roleID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guild": guildID,
		"kind":  kind,
		"role":  roleID,
	}).Info("Staff role configured")

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ %s role set to %s", kind.Label(), common.FormatRoleMention(&roleID)))
}

// handleListConfig handles /role list-config
func (f *Feature) handleListConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}

	ctx := context.Background()
	var config *entities.GuildConfig
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		config, err = services.NewGuildConfigService(uow.GuildConfigRepository()).GetConfig(ctx, guildID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, ConfigEmbed(config), nil, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// ConfigEmbed shows the role and channel configuration of a guild
func ConfigEmbed(config *entities.GuildConfig) *discordgo.MessageEmbed {
	mode := "By category"
	channel := "Not used"
	if config.SingleThumbnailChannel {
		mode = "Single channel"
		channel = "Not set"
		if config.HasSingleChannel() {
			channel = common.FormatChannelMention(*config.SingleThumbnailChannelID)
		}
	}

	return &discordgo.MessageEmbed{
		Title: "Thumbnail Configuration",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Editor role", Value: common.FormatRoleMention(config.EditorRoleID), Inline: true},
			{Name: "Designer role", Value: common.FormatRoleMention(config.DesignerRoleID), Inline: true},
			{Name: "Overseer role", Value: common.FormatRoleMention(config.OverseerRoleID), Inline: true},
			{Name: "Routing", Value: mode, Inline: true},
			{Name: "Single channel", Value: channel, Inline: true},
		},
	}
}
