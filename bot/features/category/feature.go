package category

import (
	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles categories and their channel routing
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
}

// NewFeature creates a new category feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
	}
}

// HandleCommand routes /category subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	subcommand, options := common.SubcommandOptions(i)

	switch subcommand {
	case "add":
		f.handleAdd(s, i, options)
	case "remove":
		f.handleRemove(s, i, options)
	case "list":
		f.handleList(s, i)
	case "set-channel":
		f.handleSetChannel(s, i, options)
	case "toggle-single-channel":
		f.handleToggleSingleChannel(s, i)
	case "set-single-channel":
		f.handleSetSingleChannel(s, i, options)
	default:
		log.Warnf("Unknown category subcommand: %s", subcommand)
	}
}
