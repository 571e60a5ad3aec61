package common

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"Short", "Claim", 80, "Claim"},
		{"Exact", "abcde", 5, "abcde"},
		{"Cut", "abcdef", 5, "abcd…"},
		{"Multibyte", "ééééé", 3, "éé…"},
		{"Tiny", "abc", 1, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.max))
		})
	}
}

func TestFormatRoleMention(t *testing.T) {
	role := int64(42)
	zero := int64(0)

	assert.Equal(t, "<@&42>", FormatRoleMention(&role))
	assert.Equal(t, "Not set", FormatRoleMention(&zero))
	assert.Equal(t, "Not set", FormatRoleMention(nil))
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "None", FormatList(nil, "None"))
	assert.Equal(t, "• Alice\n• Bob", FormatList([]string{"Alice", "Bob"}, "None"))

	many := make([]string, 500)
	for i := range many {
		many[i] = fmt.Sprintf("creator-%03d", i)
	}
	rendered := FormatList(many, "None")
	assert.LessOrEqual(t, len(rendered), MaxMessageLength)
	assert.True(t, strings.HasSuffix(rendered, "more"))
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fmt.Sprintf("<t:%d:R>", ts.Unix()), FormatDiscordTimestamp(ts, "R"))
	assert.Equal(t, "https://discord.com/channels/1/2/3", FormatDiscordMessageLink(1, 2, 3))
	assert.Equal(t, "<#555>", FormatChannelMention(555))
}
