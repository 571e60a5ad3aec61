package common

import (
	"fmt"
	"slices"

	"thumbnailbot/application"

	"github.com/bwmarrin/discordgo"
)

// MemberSnapshot converts a Discord member into the roster sync view of it.
// Role ids that are not snowflakes are skipped.
func MemberSnapshot(member *discordgo.Member) (application.MemberSnapshot, error) {
	if member.User == nil {
		return application.MemberSnapshot{}, fmt.Errorf("member has no user")
	}
	userID, err := ParseUserID(member.User.ID)
	if err != nil {
		return application.MemberSnapshot{}, fmt.Errorf("failed to parse user id: %w", err)
	}

	roleIDs := make([]int64, 0, len(member.Roles))
	for _, role := range member.Roles {
		roleID, err := ParseSnowflake(role)
		if err != nil {
			continue
		}
		roleIDs = append(roleIDs, roleID)
	}

	return application.MemberSnapshot{
		UserID:      userID,
		DisplayName: MemberDisplayName(member),
		RoleIDs:     roleIDs,
	}, nil
}

// LostRoles returns the snowflake roles present on before but missing on after.
// A nil before means the previous roles are unknown and nothing was lost.
func LostRoles(before, after *discordgo.Member) []int64 {
	if before == nil || after == nil {
		return nil
	}

	var lost []int64
	for _, role := range before.Roles {
		if slices.Contains(after.Roles, role) {
			continue
		}
		roleID, err := ParseSnowflake(role)
		if err != nil {
			continue
		}
		lost = append(lost, roleID)
	}
	return lost
}
