package application_test

import (
	"context"
	"testing"

	"thumbnailbot/application"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *workflowHarness) activeStaff(t *testing.T, kind entities.StaffKind, discordID int64) *entities.StaffMember {
	t.Helper()
	ctx := context.Background()

	uow := h.factory.CreateForGuild(testGuildID)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	member, err := uow.StaffRepository().GetActiveByDiscordID(ctx, kind, discordID)
	require.NoError(t, err)
	return member
}

func TestRosterSync_ApplyMember(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()
	sync := application.NewRosterSync(h.factory)

	const newMemberID = int64(700)

	// Gaining the designer role creates a designer row
	changes, err := sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      newMemberID,
		DisplayName: "erin",
		RoleIDs:     []int64{designerRoleID, 12345},
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, entities.StaffKindDesigner, changes[0].Kind)
	assert.Equal(t, events.RosterActionCreated, changes[0].Action)
	assert.NotNil(t, h.activeStaff(t, entities.StaffKindDesigner, newMemberID))

	// Keeping the role only refreshes the display name
	changes, err = sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      newMemberID,
		DisplayName: "erin b",
		RoleIDs:     []int64{designerRoleID},
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, "erin b", h.activeStaff(t, entities.StaffKindDesigner, newMemberID).DisplayName)

	// An update without the role but without an observed loss changes nothing
	changes, err = sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      newMemberID,
		DisplayName: "erin b",
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.NotNil(t, h.activeStaff(t, entities.StaffKindDesigner, newMemberID))

	// Losing the role deactivates the row
	changes, err = sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      newMemberID,
		DisplayName: "erin b",
		LostRoleIDs: []int64{designerRoleID},
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, events.RosterActionRemoved, changes[0].Action)
	assert.Nil(t, h.activeStaff(t, entities.StaffKindDesigner, newMemberID))

	// Regaining it reactivates the same row
	changes, err = sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      newMemberID,
		DisplayName: "erin",
		RoleIDs:     []int64{designerRoleID},
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, events.RosterActionReactivated, changes[0].Action)
}

func TestRosterSync_ApplyMemberIgnoresUnconfiguredGuild(t *testing.T) {
	h := newWorkflowHarness(t)
	sync := application.NewRosterSync(h.factory)

	changes, err := sync.ApplyMember(context.Background(), 42, application.MemberSnapshot{
		UserID:  700,
		RoleIDs: []int64{designerRoleID},
	})
	require.NoError(t, err)
	assert.Nil(t, changes)
}

func TestRosterSync_SyncGuild(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()
	sync := application.NewRosterSync(h.factory)

	members := []application.MemberSnapshot{
		// Bob keeps editing and also becomes a designer
		{UserID: bobID, DisplayName: "bob", RoleIDs: []int64{editorRoleID, designerRoleID}},
		// Carol no longer holds the designer role, a scan cannot tell why
		{UserID: carolID, DisplayName: "carol"},
		{UserID: daveID, DisplayName: "dave", RoleIDs: []int64{designerRoleID}},
		{UserID: oliveID, DisplayName: "olive", RoleIDs: []int64{overseerRoleID}},
	}

	summary, err := sync.SyncGuild(ctx, testGuildID, members)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.MembersScanned)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.Reactivated)

	assert.NotNil(t, h.activeStaff(t, entities.StaffKindDesigner, bobID))
	assert.NotNil(t, h.activeStaff(t, entities.StaffKindEditor, bobID))
	assert.NotNil(t, h.activeStaff(t, entities.StaffKindDesigner, carolID))

	// A second pass is a no-op
	summary, err = sync.SyncGuild(ctx, testGuildID, members)
	require.NoError(t, err)
	assert.Zero(t, summary.Created+summary.Reactivated)
}

func TestRosterSync_SyncGuildRequiresConfig(t *testing.T) {
	h := newWorkflowHarness(t)
	sync := application.NewRosterSync(h.factory)

	_, err := sync.SyncGuild(context.Background(), 42, nil)
	assert.ErrorIs(t, err, services.ErrConfigMissing)
}

func TestRosterSync_KeepsManuallyAddedStaff(t *testing.T) {
	h := newWorkflowHarness(t)
	ctx := context.Background()
	sync := application.NewRosterSync(h.factory)

	const manualEditorID = int64(500)
	uow := h.factory.CreateForGuild(testGuildID)
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.StaffRepository().Create(ctx, entities.StaffKindEditor, manualEditorID, "dana")
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	// A nickname change arrives without the editor role
	changes, err := sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      manualEditorID,
		DisplayName: "dana 2",
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.NotNil(t, h.activeStaff(t, entities.StaffKindEditor, manualEditorID))

	// Losing an unrelated role leaves the editor row alone
	changes, err = sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID:      manualEditorID,
		DisplayName: "dana 2",
		LostRoleIDs: []int64{designerRoleID},
	})
	require.NoError(t, err)
	assert.Empty(t, changes)

	summary, err := sync.SyncGuild(ctx, testGuildID, []application.MemberSnapshot{
		{UserID: manualEditorID, DisplayName: "dana 2"},
	})
	require.NoError(t, err)
	assert.Zero(t, summary.Created+summary.Reactivated)
	assert.NotNil(t, h.activeStaff(t, entities.StaffKindEditor, manualEditorID))

	// Leaving the guild removes the member from every roster
	changes, err = sync.ApplyMember(ctx, testGuildID, application.MemberSnapshot{
		UserID: manualEditorID,
		Left:   true,
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, events.RosterActionRemoved, changes[0].Action)
	assert.Nil(t, h.activeStaff(t, entities.StaffKindEditor, manualEditorID))
}
