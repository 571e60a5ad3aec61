package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatDiscordMessageLink creates a Discord message link from guild, channel, and message IDs
func FormatDiscordMessageLink(guildID, channelID, messageID int64) string {
	return fmt.Sprintf("https://discord.com/channels/%d/%d/%d", guildID, channelID, messageID)
}

// FormatChannelMention returns a channel mention
func FormatChannelMention(channelID int64) string {
	return fmt.Sprintf("<#%d>", channelID)
}

// FormatRoleMention returns a role mention, or "Not set" for a missing role
func FormatRoleMention(roleID *int64) string {
	if roleID == nil || *roleID == 0 {
		return "Not set"
	}
	return fmt.Sprintf("<@&%d>", *roleID)
}

// Truncate shortens s to at most max runes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// FormatList renders items as a bullet list, or fallback when empty.
// The result is kept below the Discord message limit.
func FormatList(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}

	var b strings.Builder
	for i, item := range items {
		line := "• " + item + "\n"
		if b.Len()+len(line) > MaxMessageLength-100 {
			fmt.Fprintf(&b, "…and %d more", len(items)-i)
			break
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}
