package thumbnail

import (
	"strings"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles thumbnail requests from slash commands, the request panel
// and the buttons on request controls
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	lifecycle  *application.RequestLifecycle
}

// NewFeature creates a new thumbnail feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, lifecycle *application.RequestLifecycle) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// HandleCommand routes /thumbnail subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	subcommand, options := common.SubcommandOptions(i)

	switch subcommand {
	case "request":
		f.handleRequestCommand(s, i, options)
	case "panel":
		f.handlePanelCommand(s, i)
	case "repost":
		f.handleRepostCommand(s, i, options)
	case "list":
		f.handleListCommand(s, i, options)
	default:
		log.Warnf("Unknown thumbnail subcommand: %s", subcommand)
	}
}

// HandleInteraction handles thumbnail buttons and the request modal
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		f.handleComponentInteraction(s, i)
	case discordgo.InteractionModalSubmit:
		f.handleModalSubmit(s, i)
	default:
		log.Warnf("Unknown interaction type in thumbnail: %v", i.Type)
	}
}

// handleComponentInteraction routes button clicks based on custom ID
func (f *Feature) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	if customID == PanelRequestID {
		f.handlePanelButton(s, i)
		return
	}

	action, requestID, err := ParseCustomID(customID)
	if err != nil {
		log.WithFields(log.Fields{
			"customID": customID,
			"error":    err,
		}).Warn("Unknown thumbnail component")
		common.RespondWithError(s, i, "Unknown thumbnail interaction")
		return
	}

	switch action {
	case ActionClaim:
		f.handleClaim(s, i, requestID)
	case ActionUnclaim:
		f.handleUnclaim(s, i, requestID)
	case ActionApprove:
		f.handleApprove(s, i, requestID)
	case ActionConfirmYes:
		f.handleConfirmYes(s, i, requestID)
	case ActionConfirmNo:
		f.handleConfirmNo(s, i)
	}
}

// handleModalSubmit handles the request modal
func (f *Feature) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.ModalSubmitData().CustomID

	if strings.HasPrefix(customID, RequestModalID) {
		f.handleRequestModal(s, i)
		return
	}

	log.Warnf("Unknown thumbnail modal customID: %s", customID)
	common.RespondWithError(s, i, "Unknown thumbnail modal")
}
