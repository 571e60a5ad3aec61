package creator

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

// Feature handles the creator roster
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
}

// NewFeature creates a new creator feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
	}
}

// HandleCommand routes /creator subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command can only be used in a server")
		return
	}

	subcommand, options := common.SubcommandOptions(i)
	ctx := context.Background()

	switch subcommand {
	case "add":
		f.handleAdd(ctx, s, i, guildID, options.StringValue("name"))
	case "remove":
		f.handleRemove(ctx, s, i, guildID, options.StringValue("name"))
	case "list":
		f.handleList(ctx, s, i, guildID)
	default:
		log.Warnf("Unknown creator subcommand: %s", subcommand)
	}
}

func (f *Feature) handleAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, name string) {
	var creator *entities.Creator
	var result interfaces.RosterResult
	err := common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		creator, result, err = roster(guildID, uow).AddCreator(ctx, name)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guild":   guildID,
		"creator": creator.Name,
		"result":  result,
	}).Info("Creator added")

	if result == interfaces.RosterReactivated {
		common.RespondEphemeral(s, i, fmt.Sprintf("✅ Creator **%s** reactivated.", creator.Name))
		return
	}
	common.RespondEphemeral(s, i, fmt.Sprintf("✅ Creator **%s** added.", creator.Name))
}

func (f *Feature) handleRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, name string) {
	err := common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		return roster(guildID, uow).RemoveCreator(ctx, name)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ Creator **%s** removed.", name))
}

func (f *Feature) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	var creators []*entities.Creator
	err := common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		creators, err = roster(guildID, uow).ListCreators(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, "**Creators**\n"+FormatCreators(creators))
}

// FormatCreators renders the active creators as a list
func FormatCreators(creators []*entities.Creator) string {
	names := make([]string, 0, len(creators))
	for _, creator := range creators {
		names = append(names, creator.Name)
	}
	return common.FormatList(names, "No creators yet. Add one with `/creator add`.")
}

func roster(guildID int64, uow application.UnitOfWork) interfaces.RosterService {
	return services.NewRosterService(guildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus())
}
