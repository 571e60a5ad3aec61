package thumbnail

import (
	"errors"
	"strings"

	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Custom ids of thumbnail components. Request buttons append the request UUID.
const (
	CustomIDPrefix      = "thumbnail_"
	PanelRequestID      = "thumbnail_panel_request"
	RequestModalID      = "thumbnail_request_modal"
	claimPrefix         = "thumbnail_claim_"
	claimedPrefix       = "thumbnail_claimed_"
	completedPrefix     = "thumbnail_completed_"
	unclaimPrefix       = "thumbnail_unclaim_"
	approvePrefix       = "thumbnail_approve_"
	confirmYesPrefix    = "thumbnail_confirm_yes_"
	confirmNoPrefix     = "thumbnail_confirm_no_"
	modalCreatorInput   = "creator"
	modalURLInput       = "url"
	modalCategoryInput  = "category"
	maxCreatorNameInput = 100
	maxURLInput         = 200
)

// Action is what a thumbnail button asks for
type Action string

const (
	ActionClaim      Action = "claim"
	ActionUnclaim    Action = "unclaim"
	ActionApprove    Action = "approve"
	ActionConfirmYes Action = "confirm_yes"
	ActionConfirmNo  Action = "confirm_no"
)

var actionPrefixes = []struct {
	prefix string
	action Action
}{
	{confirmYesPrefix, ActionConfirmYes},
	{confirmNoPrefix, ActionConfirmNo},
	{claimPrefix, ActionClaim},
	{unclaimPrefix, ActionUnclaim},
	{approvePrefix, ActionApprove},
}

// ErrUnknownComponent is returned for custom ids no handler owns
var ErrUnknownComponent = errors.New("unknown thumbnail component")

// ParseCustomID splits a request button id into its action and request id
func ParseCustomID(customID string) (Action, uuid.UUID, error) {
	for _, p := range actionPrefixes {
		if !strings.HasPrefix(customID, p.prefix) {
			continue
		}
		id, err := uuid.Parse(strings.TrimPrefix(customID, p.prefix))
		if err != nil {
			return "", uuid.Nil, err
		}
		return p.action, id, nil
	}
	return "", uuid.Nil, ErrUnknownComponent
}

// OpenControlComponents is the claimable button of a public control
func OpenControlComponents(request *entities.ThumbnailRequest) []discordgo.MessageComponent {
	return singleButton(discordgo.Button{
		Label:    "Claim",
		Style:    discordgo.PrimaryButton,
		CustomID: claimPrefix + request.ID.String(),
	})
}

// ClaimedControlComponents shows who holds the request
func ClaimedControlComponents(request *entities.ThumbnailRequest) []discordgo.MessageComponent {
	return singleButton(discordgo.Button{
		Label:    common.Truncate("Claimed by "+request.ClaimantName(), common.MaxButtonLabelLength),
		Style:    discordgo.SecondaryButton,
		CustomID: claimedPrefix + request.ID.String(),
		Disabled: true,
	})
}

// CompletedControlComponents marks a submitted request
func CompletedControlComponents(request *entities.ThumbnailRequest) []discordgo.MessageComponent {
	return singleButton(discordgo.Button{
		Label:    "Completed",
		Style:    discordgo.SuccessButton,
		CustomID: completedPrefix + request.ID.String(),
		Disabled: true,
	})
}

// ClaimControlComponents are the buttons pinned in the private channel
func ClaimControlComponents(request *entities.ThumbnailRequest, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Unclaim",
					Style:    discordgo.DangerButton,
					CustomID: unclaimPrefix + request.ID.String(),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "Approve Thumbnail",
					Style:    discordgo.SuccessButton,
					CustomID: approvePrefix + request.ID.String(),
					Disabled: disabled,
				},
			},
		},
	}
}

// ConfirmComponents asks an approver whether to record the thumbnail
func ConfirmComponents(requestID uuid.UUID) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes",
					Style:    discordgo.SuccessButton,
					CustomID: confirmYesPrefix + requestID.String(),
				},
				discordgo.Button{
					Label:    "No",
					Style:    discordgo.SecondaryButton,
					CustomID: confirmNoPrefix + requestID.String(),
				},
			},
		},
	}
}

// PanelComponents is the button that opens the request modal
func PanelComponents() []discordgo.MessageComponent {
	return singleButton(discordgo.Button{
		Label:    "Request Thumbnail",
		Style:    discordgo.PrimaryButton,
		CustomID: PanelRequestID,
	})
}

// RequestModal collects a new request. Categories are only asked for
// when the guild routes by category.
func RequestModal(askCategory bool) *discordgo.InteractionResponseData {
	rows := []discordgo.MessageComponent{
		textInputRow(discordgo.TextInput{
			CustomID:    modalCreatorInput,
			Label:       "Creator",
			Style:       discordgo.TextInputShort,
			Placeholder: "Creator name",
			Required:    true,
			MaxLength:   maxCreatorNameInput,
		}),
		textInputRow(discordgo.TextInput{
			CustomID:    modalURLInput,
			Label:       "YouTube URL",
			Style:       discordgo.TextInputShort,
			Placeholder: "https://www.youtube.com/watch?v=...",
			Required:    true,
			MaxLength:   maxURLInput,
		}),
	}
	if askCategory {
		rows = append(rows, textInputRow(discordgo.TextInput{
			CustomID:    modalCategoryInput,
			Label:       "Category",
			Style:       discordgo.TextInputShort,
			Placeholder: "Category name",
			Required:    true,
			MaxLength:   maxCreatorNameInput,
		}))
	}

	return &discordgo.InteractionResponseData{
		CustomID:   RequestModalID,
		Title:      "Request a Thumbnail",
		Components: rows,
	}
}

// modalValues collects the text inputs of a submitted modal by custom id
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = strings.TrimSpace(input.Value)
			}
		}
	}
	return values
}

func singleButton(button discordgo.Button) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{button},
		},
	}
}

func textInputRow(input discordgo.TextInput) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{input},
	}
}
