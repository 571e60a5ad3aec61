package staff

import (
	"testing"

	"thumbnailbot/application"
	"thumbnailbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestSyncMessage(t *testing.T) {
	summary := &application.SyncSummary{MembersScanned: 40, Created: 2, Reactivated: 1}
	assert.Equal(t, "Scanned 40 members: 2 added, 1 reactivated.", SyncMessage(summary))
}

func TestFormatStaff(t *testing.T) {
	out := FormatStaff([]*entities.StaffMember{
		{DiscordID: 1, DisplayName: "alice"},
		{DiscordID: 2, DisplayName: "bob"},
	})

	assert.Contains(t, out, "<@1> (alice)")
	assert.Contains(t, out, "<@2> (bob)")
	assert.Equal(t, "None", FormatStaff(nil))
}

func TestArticle(t *testing.T) {
	assert.Equal(t, "an editor", article(entities.StaffKindEditor))
	assert.Equal(t, "a designer", article(entities.StaffKindDesigner))
	assert.Equal(t, "an overseer", article(entities.StaffKindOverseer))
}
