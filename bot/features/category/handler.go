package category

import (
	"context"
	"fmt"

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

// handleAdd handles /category add name [channel]
func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	name := options.StringValue("name")
	var channelID *int64
	if id, ok := options.Snowflake("channel"); ok {
		channelID = &id
	}

	ctx := context.Background()
	var category *entities.Category
	var result interfaces.RosterResult
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		category, result, err = roster(guildID, uow).AddCategory(ctx, name, channelID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guild":    guildID,
		"category": category.Name,
		"result":   result,
	}).Info("Category added")

	verb := "added"
	if result == interfaces.RosterReactivated {
		verb = "reactivated"
	}
	common.RespondEphemeral(s, i, fmt.Sprintf("✅ Category **%s** %s. %s", category.Name, verb, channelLine(category)))
}

// handleRemove handles /category remove name
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	name := entities.NormalizeCategoryName(options.StringValue("name"))

	ctx := context.Background()
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		return roster(guildID, uow).RemoveCategory(ctx, name)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ Category **%s** removed.", name))
}

// handleList handles /category list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	ctx := context.Background()
	var categories []*entities.Category
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		categories, err = roster(guildID, uow).ListCategories(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, "**Categories**\n"+FormatCategories(categories))
}

// handleSetChannel handles /category set-channel category channel
func (f *Feature) handleSetChannel(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	channelID, ok := options.Snowflake("channel")
	if !ok {
		common.RespondWithError(s, i, "Invalid channel selected")
		return
	}
	name := options.StringValue("category")

	ctx := context.Background()
	var category *entities.Category
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		category, err = roster(guildID, uow).SetCategoryChannel(ctx, name, channelID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ Requests for **%s** now go to %s", category.Name, common.FormatChannelMention(channelID)))
}

// handleToggleSingleChannel handles /category toggle-single-channel
func (f *Feature) handleToggleSingleChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	ctx := context.Background()
	var enabled bool
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		enabled, err = services.NewGuildConfigService(uow.GuildConfigRepository()).ToggleSingleChannel(ctx, guildID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guild":   guildID,
		"enabled": enabled,
	}).Info("Single thumbnail channel mode toggled")

	common.RespondEphemeral(s, i, ToggleMessage(enabled))
}

// handleSetSingleChannel handles /category set-single-channel channel
func (f *Feature) handleSetSingleChannel(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}

	channelID, ok := options.Snowflake("channel")
	if !ok {
		common.RespondWithError(s, i, "Invalid channel selected")
		return
	}

	ctx := context.Background()
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		_, err := services.NewGuildConfigService(uow.GuildConfigRepository()).SetSingleChannel(ctx, guildID, channelID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ All requests now go to %s", common.FormatChannelMention(channelID)))
}

// FormatCategories renders one line per category with its destination
func FormatCategories(categories []*entities.Category) string {
	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("**%s** → %s", category.Name, destination(category)))
	}
	return common.FormatList(lines, "No categories yet. Add one with `/category add`.")
}

// ToggleMessage describes the routing mode after a toggle
func ToggleMessage(enabled bool) string {
	if enabled {
		return "✅ Single thumbnail channel mode enabled. Set the channel with `/category set-single-channel`."
	}
	return "✅ Single thumbnail channel mode disabled. Requests are routed by category."
}

func channelLine(category *entities.Category) string {
	if category.HasChannel() {
		return "Requests go to " + common.FormatChannelMention(*category.ChannelID) + "."
	}
	return "Set its channel with `/category set-channel`."
}

func destination(category *entities.Category) string {
	if category.HasChannel() {
		return common.FormatChannelMention(*category.ChannelID)
	}
	return "no channel"
}
