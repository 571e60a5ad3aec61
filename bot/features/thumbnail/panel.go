package thumbnail

import (
	"context"

	"thumbnailbot/bot/common"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handlePanelCommand posts the request panel in the current channel
func (f *Feature) handlePanelCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}

	ctx := context.Background()

	// The panel is useless until roles and routing are in place
	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to post the panel")
		return
	}
	defer uow.Rollback()

	routing := services.NewRoutingResolver(uow.GuildConfigRepository(), uow.CategoryRepository())
	if _, err := routing.CheckPanelReady(ctx, guildID); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	_, err = s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Thumbnail Requests",
			Description: "Editors can request a new thumbnail with the button below.",
			Color:       common.ColorPrimary,
		}},
		Components: PanelComponents(),
	})
	if err != nil {
		log.WithFields(log.Fields{
			"guild":   guildID,
			"channel": i.ChannelID,
			"error":   err,
		}).Error("Failed to post request panel")
		common.RespondWithError(s, i, "Failed to post the panel. Check my permissions in this channel.")
		return
	}

	common.RespondEphemeral(s, i, "✅ Request panel posted")
}

// handlePanelButton opens the request modal
func (f *Feature) handlePanelButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This button only works in a server")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to open the request form")
		return
	}
	defer uow.Rollback()

	routing := services.NewRoutingResolver(uow.GuildConfigRepository(), uow.CategoryRepository())
	config, err := routing.CheckPanelReady(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: RequestModal(!config.SingleThumbnailChannel),
	})
	if err != nil {
		log.Errorf("Failed to open request modal: %v", err)
	}
}
