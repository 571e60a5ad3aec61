package application_test

import (
	"context"
	"testing"

	"thumbnailbot/application"
	"thumbnailbot/database"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"
	"thumbnailbot/infrastructure"
	"thumbnailbot/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID     = int64(1018733499869577296)
	editorRoleID    = int64(9001)
	designerRoleID  = int64(9002)
	overseerRoleID  = int64(9003)
	gamingChannelID = int64(555)
	bobID           = int64(100)
	carolID         = int64(200)
	daveID          = int64(201)
	oliveID         = int64(300)
	adminID         = int64(400)
	testSourceURL   = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
)

// workflowHarness wires a lifecycle against a real database and an in-memory poster
type workflowHarness struct {
	db        *database.DB
	poster    *application.MockRequestPoster
	events    *infrastructure.RecordingEventPublisher
	metrics   *application.RecordingMetrics
	factory   *infrastructure.UnitOfWorkFactory
	lifecycle *application.RequestLifecycle
}

func newWorkflowHarness(t *testing.T) *workflowHarness {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	seedWorkflow(t, testDB.DB)

	h := &workflowHarness{
		db:      testDB.DB,
		poster:  application.NewMockRequestPoster(),
		events:  infrastructure.NewRecordingEventPublisher(),
		metrics: &application.RecordingMetrics{},
	}
	h.factory = infrastructure.NewUnitOfWorkFactory(testDB.DB, h.events)
	h.lifecycle = application.NewRequestLifecycle(h.factory, h.poster, h.metrics)
	return h
}

// seedWorkflow configures roles, the gaming category, Alice, Bob, Carol, Dave and Olive
func seedWorkflow(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	uow := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher()).CreateForGuild(testGuildID)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	configService := services.NewGuildConfigService(uow.GuildConfigRepository())
	_, err := configService.SetRole(ctx, testGuildID, entities.StaffKindEditor, editorRoleID)
	require.NoError(t, err)
	_, err = configService.SetRole(ctx, testGuildID, entities.StaffKindDesigner, designerRoleID)
	require.NoError(t, err)
	_, err = configService.SetRole(ctx, testGuildID, entities.StaffKindOverseer, overseerRoleID)
	require.NoError(t, err)

	roster := services.NewRosterService(testGuildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus())
	_, _, err = roster.AddCreator(ctx, "Alice")
	require.NoError(t, err)
	_, _, err = roster.AddCreator(ctx, "Zed")
	require.NoError(t, err)
	channelID := gamingChannelID
	_, _, err = roster.AddCategory(ctx, "gaming", &channelID)
	require.NoError(t, err)

	staff := []struct {
		kind entities.StaffKind
		id   int64
		name string
	}{
		{entities.StaffKindEditor, bobID, "bob"},
		{entities.StaffKindDesigner, carolID, "carol"},
		{entities.StaffKindDesigner, daveID, "dave"},
		{entities.StaffKindOverseer, oliveID, "olive"},
	}
	for _, s := range staff {
		_, _, err := roster.AddStaff(ctx, s.kind, s.id, s.name)
		require.NoError(t, err)
	}

	assignments := services.NewAssignmentService(uow.CreatorRepository(), uow.StaffRepository(), uow.AssignmentRepository())
	require.NoError(t, assignments.Assign(ctx, bobID, "Alice"))

	require.NoError(t, uow.Commit())
}

func (h *workflowHarness) openAliceRequest(t *testing.T) *entities.ThumbnailRequest {
	t.Helper()

	request, err := h.lifecycle.Open(context.Background(), interfaces.OpenRequestParams{
		GuildID:     testGuildID,
		ActorID:     bobID,
		ActorName:   "bob",
		CreatorName: "Alice",
		SourceURL:   testSourceURL,
		Category:    "gaming",
	})
	require.NoError(t, err)
	return request
}

func (h *workflowHarness) claim(designerID int64, name string, requestID uuid.UUID) (*entities.ThumbnailRequest, error) {
	return h.lifecycle.Claim(context.Background(), application.ClaimInput{
		GuildID:          testGuildID,
		RequestID:        requestID,
		DesignerID:       designerID,
		DesignerName:     name,
		DesignerUsername: name,
	})
}

func (h *workflowHarness) reload(t *testing.T, requestID uuid.UUID) *entities.ThumbnailRequest {
	t.Helper()
	request, err := h.lifecycle.Get(context.Background(), testGuildID, requestID)
	require.NoError(t, err)
	return request
}

func (h *workflowHarness) recordCount(t *testing.T) int {
	t.Helper()
	var count int
	err := h.db.QueryRow(context.Background(), `SELECT COUNT(*) FROM thumbnail_records`).Scan(&count)
	require.NoError(t, err)
	return count
}

func (h *workflowHarness) deactivateStaff(t *testing.T, kind entities.StaffKind, discordID int64) {
	t.Helper()
	ctx := context.Background()

	uow := h.factory.CreateForGuild(testGuildID)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	roster := services.NewRosterService(testGuildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus())
	require.NoError(t, roster.RemoveStaff(ctx, kind, discordID))
	require.NoError(t, uow.Commit())
}
