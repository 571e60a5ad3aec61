package thumbnail

import (
	"fmt"
	"strings"
	"time"

	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// RequestEmbed describes a request on its public control
func RequestEmbed(request *entities.ThumbnailRequest) *discordgo.MessageEmbed {
	color := common.ColorPrimary
	status := "Open"
	switch request.State {
	case entities.RequestStateClaimed:
		color = common.ColorWarning
		status = "Claimed by " + request.ClaimantName()
	case entities.RequestStateSubmitted:
		color = common.ColorSuccess
		status = "Completed"
	}

	return &discordgo.MessageEmbed{
		Title: "Thumbnail Request",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Creator", Value: request.CreatorName, Inline: true},
			{Name: "Category", Value: categoryLabel(request), Inline: true},
			{Name: "Requested by", Value: common.GetUserMention(request.EditorDiscordID), Inline: true},
			{Name: "YouTube URL", Value: request.SourceURL},
			{Name: "Status", Value: status},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Request " + request.ID.String(),
		},
		Timestamp: request.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ClaimControlEmbed is pinned in the private channel of a claimed request
func ClaimControlEmbed(request *entities.ThumbnailRequest) *discordgo.MessageEmbed {
	embed := RequestEmbed(request)
	embed.Title = "Claimed Thumbnail Request"
	embed.Description = "Use **Unclaim** to hand the request back, or **Approve Thumbnail** once it is done."
	return embed
}

// RequestListLine summarizes a request in listings
func RequestListLine(request *entities.ThumbnailRequest) string {
	parts := []string{
		fmt.Sprintf("`%s`", request.ID.String()),
		request.CreatorName,
		categoryLabel(request),
	}
	if request.IsClaimed() {
		parts = append(parts, "claimed by "+request.ClaimantName())
	}
	if !request.HasPublicMessage() {
		parts = append(parts, "no public control")
	}
	return strings.Join(parts, " · ")
}

func categoryLabel(request *entities.ThumbnailRequest) string {
	if request.Category == "" {
		return "None"
	}
	return request.Category
}
