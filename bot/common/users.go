package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	// Try to get guild member for server-specific nickname
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		return MemberDisplayName(member)
	}

	// Fallback to just getting the user
	user, err := s.User(userID)
	if err == nil && user != nil {
		return UserDisplayName(user)
	}

	return "Unknown"
}

// MemberDisplayName returns the nickname, global name or username of a member
func MemberDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		return UserDisplayName(member.User)
	}
	return "Unknown"
}

// UserDisplayName returns the global name of a user, falling back to the username
func UserDisplayName(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// ParseSnowflake converts any Discord id string to int64
func ParseSnowflake(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// FormatSnowflake converts an int64 Discord id to its string form
func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}

// InteractionUser returns the user behind an interaction in a guild or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the id of the interacting user, or an empty string
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// InteractionName describes an interaction for logging
func InteractionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return i.ModalSubmitData().CustomID
	}
	return "interaction_" + strconv.Itoa(int(i.Type))
}

// IsUserAdmin checks if a user has administrator permissions in a guild
func IsUserAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return hasPermission(s, i, discordgo.PermissionAdministrator)
}

// CanManageChannels checks if a user has Manage Channels or Administrator in a guild
func CanManageChannels(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return hasPermission(s, i, discordgo.PermissionManageChannels)
}

func hasPermission(s *discordgo.Session, i *discordgo.InteractionCreate, permission int64) bool {
	if i.Member == nil {
		return false
	}

	// Interactions carry the resolved permissions of the member in the channel
	if i.Member.Permissions != 0 {
		return i.Member.Permissions&discordgo.PermissionAdministrator != 0 ||
			i.Member.Permissions&permission != 0
	}

	// Check each role for the permission
	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil {
			log.WithFields(log.Fields{
				"guild_id": i.GuildID,
				"role_id":  roleID,
			}).Debug("Role not found in state")
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 || role.Permissions&permission != 0 {
			return true
		}
	}

	return false
}
