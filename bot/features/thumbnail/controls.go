package thumbnail

import (
	"context"
	"errors"
	"fmt"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const confirmPrompt = "Would you like to record this thumbnail in the database?"

// actor is the guild member behind a button click
type actor struct {
	guildID int64
	userID  int64
	user    *discordgo.User
}

func resolveActor(i *discordgo.InteractionCreate) (*actor, error) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return nil, fmt.Errorf("invalid guild id: %w", err)
	}
	user := common.InteractionUser(i)
	if user == nil {
		return nil, errors.New("interaction has no user")
	}
	userID, err := common.ParseUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	return &actor{guildID: guildID, userID: userID, user: user}, nil
}

// parseRequestID accepts a request id typed by an administrator
func parseRequestID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// handleClaim claims an open request for the clicking designer
func (f *Feature) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, requestID uuid.UUID) {
	a, err := resolveActor(i)
	if err != nil {
		common.RespondWithError(s, i, "This button only works in a server")
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	request, err := f.lifecycle.Claim(context.Background(), application.ClaimInput{
		GuildID:          a.guildID,
		RequestID:        requestID,
		DesignerID:       a.userID,
		DesignerName:     common.MemberDisplayName(i.Member),
		DesignerUsername: a.user.Username,
	})
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	message := "You claimed this request."
	if request.HasPrivateChannel() {
		message = fmt.Sprintf("You claimed this request. Work on it in %s", common.FormatChannelMention(*request.PrivateChannelID))
	}
	common.FollowUpWithSuccess(s, i, message, true)
}

// handleUnclaim hands a claimed request back to the public channel
func (f *Feature) handleUnclaim(s *discordgo.Session, i *discordgo.InteractionCreate, requestID uuid.UUID) {
	a, err := resolveActor(i)
	if err != nil {
		common.RespondWithError(s, i, "This button only works in a server")
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	request, err := f.lifecycle.Unclaim(context.Background(), a.guildID, requestID, a.userID, common.CanManageChannels(s, i))
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	// The channel this button lives in is gone by now, so the follow-up may fail
	log.WithFields(log.Fields{
		"guild":     a.guildID,
		"requestID": request.ID,
		"actor":     a.userID,
	}).Debug("Unclaim finished")
	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Request for **%s** is open again", request.CreatorName), true)
}

// handleApprove asks an overseer whether to record the thumbnail
func (f *Feature) handleApprove(s *discordgo.Session, i *discordgo.InteractionCreate, requestID uuid.UUID) {
	a, err := resolveActor(i)
	if err != nil {
		common.RespondWithError(s, i, "This button only works in a server")
		return
	}

	request, err := f.lifecycle.Approve(context.Background(), a.guildID, requestID, a.userID, common.IsUserAdmin(s, i))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    confirmPrompt,
			Components: ConfirmComponents(request.ID),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Failed to send approval prompt: %v", err)
	}
}

// handleConfirmYes records the thumbnail and completes the request
func (f *Feature) handleConfirmYes(s *discordgo.Session, i *discordgo.InteractionCreate, requestID uuid.UUID) {
	a, err := resolveActor(i)
	if err != nil {
		common.RespondWithError(s, i, "This button only works in a server")
		return
	}

	// Replace the prompt so it cannot be clicked twice while we work
	if err := common.UpdateComponentMessage(s, i, "Recording thumbnail...", nil); err != nil {
		log.Errorf("Failed to update approval prompt: %v", err)
		return
	}

	result, err := f.lifecycle.Confirm(context.Background(), a.guildID, requestID, a.userID, common.IsUserAdmin(s, i))

	var platformErr *services.PlatformActionFailedError
	switch {
	case errors.As(err, &platformErr) && result != nil:
		f.editPrompt(s, i, fmt.Sprintf("✅ Thumbnail recorded (record #%d), but Discord failed to %s.",
			result.Record.ID, platformErr.Step))
	case err != nil:
		message, ok := common.DomainErrorMessage(err)
		if !ok {
			log.WithFields(log.Fields{
				"guild":     a.guildID,
				"requestID": requestID,
				"error":     err,
			}).Error("Failed to record thumbnail")
			message = common.MsgGenericError
		}
		f.editPrompt(s, i, "❌ "+message)
	default:
		f.editPrompt(s, i, fmt.Sprintf("✅ Thumbnail recorded (record #%d)", result.Record.ID))
	}
}

// handleConfirmNo dismisses the prompt without recording anything
func (f *Feature) handleConfirmNo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.UpdateComponentMessage(s, i, "Thumbnail was not recorded.", nil); err != nil {
		log.Errorf("Failed to update approval prompt: %v", err)
	}
}

func (f *Feature) editPrompt(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		log.Errorf("Failed to edit approval prompt: %v", err)
	}
}
