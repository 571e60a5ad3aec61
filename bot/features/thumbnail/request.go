package thumbnail

import (
	"context"
	"errors"
	"fmt"

	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleRequestCommand handles /thumbnail request creator url [category]
func (f *Feature) handleRequestCommand(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	f.openRequest(s, i, options.StringValue("creator"), options.StringValue("url"), options.StringValue("category"))
}

// handleRequestModal handles the request modal opened from the panel
func (f *Feature) handleRequestModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := modalValues(i.ModalSubmitData())
	f.openRequest(s, i, values[modalCreatorInput], values[modalURLInput], values[modalCategoryInput])
}

// openRequest opens a request and posts its public control
func (f *Feature) openRequest(s *discordgo.Session, i *discordgo.InteractionCreate, creatorName, sourceURL, category string) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}
	user := common.InteractionUser(i)
	actorID, err := common.ParseUserID(user.ID)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user ID")
		return
	}

	// Posting the control can take a moment
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	request, err := f.lifecycle.Open(context.Background(), interfaces.OpenRequestParams{
		GuildID:     guildID,
		ActorID:     actorID,
		ActorName:   common.MemberDisplayName(i.Member),
		IsAdmin:     common.IsUserAdmin(s, i),
		CreatorName: creatorName,
		SourceURL:   sourceURL,
		Category:    category,
	})

	var platformErr *services.PlatformActionFailedError
	if errors.As(err, &platformErr) && request != nil {
		log.WithFields(log.Fields{
			"guild":     guildID,
			"requestID": request.ID,
			"step":      platformErr.Step,
		}).Warn("Thumbnail request saved without public control")
		common.FollowUpWithError(s, i, fmt.Sprintf(
			"The request was saved but its message could not be posted. An administrator can run `/thumbnail repost id:%s`.",
			request.ID))
		return
	}
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Thumbnail request for **%s** posted in %s",
		request.CreatorName, common.FormatChannelMention(request.ChannelID)), true)
}

// handleRepostCommand handles /thumbnail repost id
func (f *Feature) handleRepostCommand(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}
	requestID, err := parseRequestID(options.StringValue("id"))
	if err != nil {
		common.RespondWithError(s, i, "That is not a valid request id")
		return
	}
	actorID, _ := common.ParseUserID(common.InteractionUserID(i))

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	request, err := f.lifecycle.Repost(context.Background(), guildID, requestID, actorID)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Request for **%s** reposted in %s",
		request.CreatorName, common.FormatChannelMention(request.ChannelID)), true)
}

// handleListCommand handles /thumbnail list [state]
func (f *Feature) handleListCommand(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}

	state := entities.RequestStateOpen
	if raw := options.StringValue("state"); raw != "" {
		state = entities.RequestState(raw)
	}

	requests, err := f.lifecycle.List(context.Background(), guildID, state, services.DefaultListLimit)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	lines := make([]string, 0, len(requests))
	for _, request := range requests {
		lines = append(lines, RequestListLine(request))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Thumbnail requests: %s", state),
		Color:       common.ColorInfo,
		Description: common.FormatList(lines, "No requests in this state."),
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}
