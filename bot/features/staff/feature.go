package staff

import (
	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles staff rosters and editor assignments
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	rosterSync *application.RosterSync
	members    MemberSource
}

// NewFeature creates a new staff feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, rosterSync *application.RosterSync, members MemberSource) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		rosterSync: rosterSync,
		members:    members,
	}
}

// HandleCommand routes /staff subcommands
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
		f.handleList(s, i, options)
	case "sync":
		f.handleSync(s, i)
	case "assign-editor":
		f.handleAssign(s, i, options)
	case "unassign-editor":
		f.handleUnassign(s, i, options)
	case "editor-assignments":
		f.handleEditorAssignments(s, i, options)
	case "creator-assignments":
		f.handleCreatorAssignments(s, i, options)
	default:
		log.Warnf("Unknown staff subcommand: %s", subcommand)
	}
}
