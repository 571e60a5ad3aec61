package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"thumbnailbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	privateChannelPrefix   = "thumbnail-"
	maxChannelNameLength   = 100
	fallbackChannelSubject = "designer"
)

// privateChannelAllow is what claimant, overseers and the bot may do in a private channel
const privateChannelAllow = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionAttachFiles |
	discordgo.PermissionEmbedLinks

// Poster implements application.RequestPoster on a Discord session
type Poster struct {
	session *discordgo.Session
}

// NewPoster creates a new Discord request poster
func NewPoster(session *discordgo.Session) *Poster {
	return &Poster{session: session}
}

// PostOpenControl posts the claimable public control of a request
func (p *Poster) PostOpenControl(ctx context.Context, request *entities.ThumbnailRequest) (int64, error) {
	msg, err := p.session.ChannelMessageSendComplex(snowflake(request.ChannelID), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{RequestEmbed(request)},
		Components: OpenControlComponents(request),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to post public control: %w", err)
	}

	return parseSnowflake(msg.ID)
}

// MarkClaimed disables the public control and names the claimant
func (p *Poster) MarkClaimed(ctx context.Context, request *entities.ThumbnailRequest) error {
	return p.editPublicControl(ctx, request, ClaimedControlComponents(request))
}

// MarkCompleted disables the public control as completed
func (p *Poster) MarkCompleted(ctx context.Context, request *entities.ThumbnailRequest) error {
	return p.editPublicControl(ctx, request, CompletedControlComponents(request))
}

func (p *Poster) editPublicControl(ctx context.Context, request *entities.ThumbnailRequest, components []discordgo.MessageComponent) error {
	if !request.HasPublicMessage() {
		return fmt.Errorf("request %s has no public control", request.ID)
	}

	embeds := []*discordgo.MessageEmbed{RequestEmbed(request)}
	_, err := p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    snowflake(request.ChannelID),
		ID:         snowflake(*request.MessageID),
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit public control: %w", err)
	}
	return nil
}

// CreatePrivateChannel creates a text channel only the claimant, the overseer
// role and the bot can see
func (p *Poster) CreatePrivateChannel(ctx context.Context, request *entities.ThumbnailRequest, designerUsername string, overseerRoleID int64) (int64, error) {
	guildID := snowflake(request.GuildID)
	overwrites := []*discordgo.PermissionOverwrite{
		{
			// The @everyone role shares the guild id
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    snowflake(*request.DesignerID),
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: privateChannelAllow,
		},
	}
	if overseerRoleID != 0 {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    snowflake(overseerRoleID),
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: privateChannelAllow,
		})
	}
	if p.session.State != nil && p.session.State.User != nil {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    p.session.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: privateChannelAllow | discordgo.PermissionManageMessages | discordgo.PermissionManageChannels,
		})
	}

	channel, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 PrivateChannelName(designerUsername),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Thumbnail for %s (request %s)", request.CreatorName, request.ID),
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to create private channel: %w", err)
	}

	return parseSnowflake(channel.ID)
}

// PostClaimControl posts the unclaim/approve controls in the private channel
func (p *Poster) PostClaimControl(ctx context.Context, channelID int64, request *entities.ThumbnailRequest) (int64, error) {
	msg, err := p.session.ChannelMessageSendComplex(snowflake(channelID), &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%d> claimed this request.", *request.DesignerID),
		Embeds:     []*discordgo.MessageEmbed{ClaimControlEmbed(request)},
		Components: ClaimControlComponents(request, false),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to post claim control: %w", err)
	}

	return parseSnowflake(msg.ID)
}

// PinMessage pins a message in a channel
func (p *Poster) PinMessage(ctx context.Context, channelID, messageID int64) error {
	if err := p.session.ChannelMessagePin(snowflake(channelID), snowflake(messageID), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to pin claim control: %w", err)
	}
	return nil
}

// DisableClaimControl greys out the private channel buttons of a submitted request
func (p *Poster) DisableClaimControl(ctx context.Context, request *entities.ThumbnailRequest) error {
	if request.ControlMessageID == nil || !request.HasPrivateChannel() {
		return nil
	}

	embeds := []*discordgo.MessageEmbed{ClaimControlEmbed(request)}
	components := ClaimControlComponents(request, true)
	_, err := p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    snowflake(*request.PrivateChannelID),
		ID:         snowflake(*request.ControlMessageID),
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if isGone(err) {
		log.WithField("requestID", request.ID).Debug("Claim control already gone")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to disable claim control: %w", err)
	}
	return nil
}

// DeleteMessage deletes a message; a message that no longer exists is not an error
func (p *Poster) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	err := p.session.ChannelMessageDelete(snowflake(channelID), snowflake(messageID), discordgo.WithContext(ctx))
	if isGone(err) {
		log.WithFields(log.Fields{
			"channelID": channelID,
			"messageID": messageID,
		}).Debug("Message already deleted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// DeleteChannel deletes a channel; a channel that no longer exists is not an error
func (p *Poster) DeleteChannel(ctx context.Context, channelID int64) error {
	_, err := p.session.ChannelDelete(snowflake(channelID), discordgo.WithContext(ctx))
	if isGone(err) {
		log.WithField("channelID", channelID).Debug("Channel already deleted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	return nil
}

// PrivateChannelName builds a valid text channel name for a designer
func PrivateChannelName(username string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(username) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteRune('-')
			lastDash = true
		}
	}

	subject := strings.Trim(b.String(), "-")
	if subject == "" {
		subject = fallbackChannelSubject
	}

	name := privateChannelPrefix + subject
	if runes := []rune(name); len(runes) > maxChannelNameLength {
		name = string(runes[:maxChannelNameLength])
	}
	return name
}

// isGone reports whether Discord says the target message or channel does not exist
func isGone(err error) bool {
	if err == nil {
		return false
	}
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return true
		}
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

func snowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseSnowflake(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse discord id %q: %w", id, err)
	}
	return parsed, nil
}
