package repository

import (
	"context"
	"testing"

	"thumbnailbot/domain/entities"
	"thumbnailbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatorRepository_SoftDeleteKeepsIdentity(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCreatorRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID)

	created, err := repo.Create(ctx, "Alice")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	created.IsActive = false
	require.NoError(t, repo.Update(ctx, created))

	active, err := repo.GetActiveByName(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, active)

	stored, err := repo.GetByName(ctx, "ALICE")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, created.ID, stored.ID)
	assert.False(t, stored.IsActive)

	stored.IsActive = true
	require.NoError(t, repo.Update(ctx, stored))

	reactivated, err := repo.GetActiveByName(ctx, "Alice")
	require.NoError(t, err)
	require.NotNil(t, reactivated)
	assert.Equal(t, created.ID, reactivated.ID)
}

func TestCreatorRepository_UniqueActiveName(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCreatorRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID)

	_, err := repo.Create(ctx, "Alice")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice")
	require.Error(t, err)

	// Another guild may use the same name
	other := NewCreatorRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID+1)
	_, err = other.Create(ctx, "Alice")
	require.NoError(t, err)
}

func TestCreatorRepository_SearchActive(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCreatorRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID)
	for _, name := range []string{"Alice", "Malik", "Bob", "Alicia"} {
		_, err := repo.Create(ctx, name)
		require.NoError(t, err)
	}

	bob, err := repo.GetActiveByName(ctx, "Bob")
	require.NoError(t, err)
	bob.IsActive = false
	require.NoError(t, repo.Update(ctx, bob))

	results, err := repo.SearchActive(ctx, "LI", 10)
	require.NoError(t, err)

	var names []string
	for _, c := range results {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Alice", "Alicia", "Malik"}, names)

	limited, err := repo.SearchActive(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStaffRepository_KindsAreIndependent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewStaffRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID)

	editor, err := repo.Create(ctx, entities.StaffKindEditor, 100, "bob")
	require.NoError(t, err)
	designer, err := repo.Create(ctx, entities.StaffKindDesigner, 100, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, editor.ID, designer.ID)

	editor.IsActive = false
	require.NoError(t, repo.Update(ctx, editor))

	activeEditor, err := repo.GetActiveByDiscordID(ctx, entities.StaffKindEditor, 100)
	require.NoError(t, err)
	assert.Nil(t, activeEditor)

	activeDesigner, err := repo.GetActiveByDiscordID(ctx, entities.StaffKindDesigner, 100)
	require.NoError(t, err)
	require.NotNil(t, activeDesigner)
	assert.Equal(t, designer.ID, activeDesigner.ID)

	anyEditor, err := repo.GetByDiscordID(ctx, entities.StaffKindEditor, 100)
	require.NoError(t, err)
	require.NotNil(t, anyEditor)
	assert.Equal(t, editor.ID, anyEditor.ID)

	// The same discord id and kind cannot be inserted twice
	_, err = repo.Create(ctx, entities.StaffKindDesigner, 100, "bob again")
	require.Error(t, err)
}

func TestCategoryRepository_ChannelAndCount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewCategoryRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	channelID := int64(555)
	gaming, err := repo.Create(ctx, "gaming", &channelID)
	require.NoError(t, err)
	require.NotNil(t, gaming.ChannelID)
	assert.Equal(t, channelID, *gaming.ChannelID)

	vlogs, err := repo.Create(ctx, "vlogs", nil)
	require.NoError(t, err)
	assert.False(t, vlogs.HasChannel())

	count, err = repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	vlogs.IsActive = false
	require.NoError(t, repo.Update(ctx, vlogs))

	count, err = repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, err := repo.GetActiveByName(ctx, "gaming")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, gaming.ID, found.ID)
}

func TestAssignmentRepository_Lifecycle(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	alice := testutil.SeedCreator(t, testDB.DB, testutil.TestGuildID, "Alice")
	zed := testutil.SeedCreator(t, testDB.DB, testutil.TestGuildID, "Zed")
	bob := testutil.SeedStaff(t, testDB.DB, testutil.TestGuildID, entities.StaffKindEditor, 100, "bob")

	repo := NewAssignmentRepositoryScoped(testDB.DB.Pool, testutil.TestGuildID)

	exists, err := repo.Exists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, bob.ID, zed.ID))
	require.NoError(t, repo.Create(ctx, bob.ID, alice.ID))

	exists, err = repo.Exists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	creators, err := repo.ListCreatorsForEditor(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, creators, 2)
	assert.Equal(t, "Alice", creators[0].Name)
	assert.Equal(t, "Zed", creators[1].Name)

	editors, err := repo.ListEditorsForCreator(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, editors, 1)
	assert.Equal(t, bob.ID, editors[0].ID)

	deleted, err := repo.Delete(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	var count int
	err = testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM editor_assignments`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGuildConfigRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewGuildConfigRepository(testDB.DB)

	missing, err := repo.GetByGuildID(ctx, testutil.TestGuildID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	config, err := repo.GetOrCreate(ctx, testutil.TestGuildID)
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, []string{"Editor", "Designer", "Overseer"}, config.MissingRoles())

	roleID := int64(9001)
	config.EditorRoleID = &roleID
	config.SingleThumbnailChannel = true
	require.NoError(t, repo.Update(ctx, config))

	again, err := repo.GetOrCreate(ctx, testutil.TestGuildID)
	require.NoError(t, err)
	require.NotNil(t, again.EditorRoleID)
	assert.Equal(t, roleID, *again.EditorRoleID)
	assert.True(t, again.SingleThumbnailChannel)
}

func TestGuildConfigRepository_GetGuildsWithRoles(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewGuildConfigRepository(testDB.DB)

	_, err := repo.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	configured, err := repo.GetOrCreate(ctx, 200)
	require.NoError(t, err)
	roleID := int64(9002)
	configured.OverseerRoleID = &roleID
	require.NoError(t, repo.Update(ctx, configured))

	guildIDs, err := repo.GetGuildsWithRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{200}, guildIDs)
}
