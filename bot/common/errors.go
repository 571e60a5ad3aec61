package common

import (
	"errors"
	"fmt"
	"strings"

	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string      // Message shown to Discord user
	LogMessage  string      // Internal message for logging
	Ephemeral   bool        // Whether the error message should be ephemeral
	Err         error       // Underlying error
	Context     interface{} // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, missing setup, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: MsgGenericError,
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// DomainErrorMessage maps a domain error to the text shown to the actor.
// The second return value is false for errors the domain does not know about.
func DomainErrorMessage(err error) (string, bool) {
	var (
		notFound     *services.NotFoundError
		exists       *services.AlreadyExistsError
		notActive    *services.NotActiveError
		incomplete   *services.RolesIncompleteError
		unauthorized *services.UnauthorizedError
		platform     *services.PlatformActionFailedError
		noRecords    *services.NoRecordsError
		tooLong      *services.TooLongError
	)

	switch {
	case errors.As(err, &platform):
		return fmt.Sprintf("Discord failed to %s. Steps after it were skipped and may need an administrator.", platform.Step), true
	case errors.As(err, &notFound):
		return fmt.Sprintf("%s not found.", capitalize(notFound.Entity)), true
	case errors.As(err, &exists):
		return fmt.Sprintf("That %s already exists.", exists.Entity), true
	case errors.As(err, &notActive):
		return fmt.Sprintf("That %s is not active.", notActive.Entity), true
	case errors.As(err, &incomplete):
		return fmt.Sprintf("These roles are not configured yet: %s.", strings.Join(incomplete.Missing, ", ")), true
	case errors.As(err, &unauthorized):
		return fmt.Sprintf("You are not allowed to %s.", unauthorized.Action), true
	case errors.As(err, &tooLong):
		return fmt.Sprintf("The %s must be at most %d characters.", tooLong.Field, tooLong.Max), true
	case errors.As(err, &noRecords):
		return fmt.Sprintf("No thumbnail records found for %02d/%d.", noRecords.Month, noRecords.Year), true
	case errors.Is(err, services.ErrAlreadyAssigned):
		return "That editor is already assigned to this creator.", true
	case errors.Is(err, services.ErrNotAssigned):
		return "That editor is not assigned to this creator.", true
	case errors.Is(err, services.ErrConfigMissing):
		return "This server has not been configured yet. Set the editor, designer and overseer roles first.", true
	case errors.Is(err, services.ErrChannelUnset):
		return "Single thumbnail channel mode is on but no channel is set.", true
	case errors.Is(err, services.ErrCategoryRequired):
		return "Please choose a category.", true
	case errors.Is(err, services.ErrCategoryNotFound):
		return "That category does not exist.", true
	case errors.Is(err, services.ErrCategoryChannelUnset):
		return "That category has no channel set.", true
	case errors.Is(err, services.ErrNoCategories):
		return "No categories have been added yet.", true
	case errors.Is(err, services.ErrAlreadyClaimed):
		return "This request has already been claimed.", true
	case errors.Is(err, services.ErrNotClaimed):
		return "This request is not claimed.", true
	case errors.Is(err, services.ErrAlreadySubmitted):
		return "This thumbnail has already been recorded.", true
	case errors.Is(err, services.ErrInvalidURL):
		return "Please provide a valid YouTube URL.", true
	case errors.Is(err, services.ErrInvalidPeriod):
		return "Month must be between 1 and 12 and year between 2000 and 9999.", true
	case errors.Is(err, services.ErrInvalidName):
		return "Name must not be empty.", true
	}
	return "", false
}

// RenderDomainError turns any error from a service call into a BotError.
// Unknown errors become system errors and keep the original for logging.
func RenderDomainError(err error, logMessage string) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}
	if message, ok := DomainErrorMessage(err); ok {
		return &BotError{
			UserMessage: message,
			LogMessage:  logMessage,
			Ephemeral:   true,
			Err:         err,
		}
	}
	return NewSystemError(err, logMessage)
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and tells the actor what went wrong.
// Domain errors keep their own message; anything else gets the generic one.
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	botErr := RenderDomainError(err, "Interaction failed")

	fields := log.Fields{
		"user_id":      InteractionUserID(i),
		"interaction":  InteractionName(i),
		"error":        botErr.Error(),
		"user_message": botErr.UserMessage,
	}
	if botErr.Context != nil {
		fields["context"] = botErr.Context
	}
	if botErr.UserMessage == MsgGenericError {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Info(botErr.LogMessage)
	}

	if deferred {
		FollowUpWithError(s, i, botErr.UserMessage)
	} else {
		RespondWithError(s, i, botErr.UserMessage)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
