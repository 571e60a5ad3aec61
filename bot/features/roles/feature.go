package roles

import (
	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the staff role configuration of a guild
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
}

// NewFeature creates a new roles feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
	}
}

// HandleCommand routes /role subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, common.MsgAdminRequired)
		return
	}

	subcommand, options := common.SubcommandOptions(i)

	switch subcommand {
	case "set-editor":
		f.handleSetRole(s, i, options, entities.StaffKindEditor)
	case "set-designer":
		f.handleSetRole(s, i, options, entities.StaffKindDesigner)
	case "set-overseer":
		f.handleSetRole(s, i, options, entities.StaffKindOverseer)
	case "list-config":
		f.handleListConfig(s, i)
	default:
		log.Warnf("Unknown role subcommand: %s", subcommand)
	}
}
