package services

import (
	"context"
	"testing"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestGuildID      = int64(555555555)
	TestEditorID     = int64(100)
	TestDesignerID   = int64(200)
	TestOverseerID   = int64(300)
	TestAdminID      = int64(400)
	TestChannelID    = int64(987654321)
	TestRoleEditor   = int64(11)
	TestRoleDesigner = int64(12)
	TestRoleOverseer = int64(13)
	TestCreatorName  = "Alice"
	TestSourceURL    = "https://youtu.be/dQw4w9WgXcQ"
)

// TestMocks aggregates all repository mocks for testing
type TestMocks struct {
	GuildConfigRepo *testhelpers.MockGuildConfigRepository
	CreatorRepo     *testhelpers.MockCreatorRepository
	StaffRepo       *testhelpers.MockStaffRepository
	CategoryRepo    *testhelpers.MockCategoryRepository
	AssignmentRepo  *testhelpers.MockAssignmentRepository
	RequestRepo     *testhelpers.MockThumbnailRequestRepository
	RecordRepo      *testhelpers.MockThumbnailRecordRepository
	EventPublisher  *testhelpers.MockEventPublisher
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		GuildConfigRepo: &testhelpers.MockGuildConfigRepository{},
		CreatorRepo:     &testhelpers.MockCreatorRepository{},
		StaffRepo:       &testhelpers.MockStaffRepository{},
		CategoryRepo:    &testhelpers.MockCategoryRepository{},
		AssignmentRepo:  &testhelpers.MockAssignmentRepository{},
		RequestRepo:     &testhelpers.MockThumbnailRequestRepository{},
		RecordRepo:      &testhelpers.MockThumbnailRecordRepository{},
		EventPublisher:  &testhelpers.MockEventPublisher{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.GuildConfigRepo.AssertExpectations(t)
	m.CreatorRepo.AssertExpectations(t)
	m.StaffRepo.AssertExpectations(t)
	m.CategoryRepo.AssertExpectations(t)
	m.AssignmentRepo.AssertExpectations(t)
	m.RequestRepo.AssertExpectations(t)
	m.RecordRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
}

// NewRequestServiceWithMocks wires a request service to the mocks
func (m *TestMocks) NewRequestServiceWithMocks() interfaces.RequestService {
	return NewRequestService(
		m.RequestRepo,
		m.RecordRepo,
		m.CreatorRepo,
		m.StaffRepo,
		m.CategoryRepo,
		m.AssignmentRepo,
		m.GuildConfigRepo,
		m.EventPublisher,
	)
}

// MockHelper provides common mock setup patterns
type MockHelper struct {
	mocks *TestMocks
	ctx   context.Context
}

// NewMockHelper creates a new mock helper
func NewMockHelper(mocks *TestMocks) *MockHelper {
	return &MockHelper{
		mocks: mocks,
		ctx:   context.Background(),
	}
}

// ExpectActiveStaff sets up an active staff lookup
func (h *MockHelper) ExpectActiveStaff(kind entities.StaffKind, member *entities.StaffMember) {
	h.mocks.StaffRepo.On("GetActiveByDiscordID", mock.Anything, kind, member.DiscordID).Return(member, nil)
}

// ExpectNoActiveStaff sets up a staff lookup that finds nothing
func (h *MockHelper) ExpectNoActiveStaff(kind entities.StaffKind, discordID int64) {
	h.mocks.StaffRepo.On("GetActiveByDiscordID", mock.Anything, kind, discordID).Return(nil, nil)
}

// ExpectRequestLookup sets up a request lookup
func (h *MockHelper) ExpectRequestLookup(request *entities.ThumbnailRequest) {
	h.mocks.RequestRepo.On("GetByID", mock.Anything, request.ID).Return(request, nil)
}

// ExpectStateUpdate sets up a compare-and-set on the request row
func (h *MockHelper) ExpectStateUpdate(expected entities.RequestState, won bool) {
	h.mocks.RequestRepo.On("UpdateIfState", mock.Anything, mock.AnythingOfType("*entities.ThumbnailRequest"), expected).Return(won, nil)
}

// ExpectGuildConfig sets up the guild config lookup
func (h *MockHelper) ExpectGuildConfig(config *entities.GuildConfig) {
	h.mocks.GuildConfigRepo.On("GetByGuildID", mock.Anything, TestGuildID).Return(config, nil)
}

// ExpectEventPublish sets up event publisher mock expectations
func (h *MockHelper) ExpectEventPublish(eventType events.EventType) {
	h.mocks.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type() == eventType
	})).Return(nil)
}

// Fixtures

// NewTestStaff creates an active staff member
func NewTestStaff(id int64, kind entities.StaffKind, discordID int64, name string) *entities.StaffMember {
	return &entities.StaffMember{
		ID:          id,
		GuildID:     TestGuildID,
		Kind:        kind,
		DiscordID:   discordID,
		DisplayName: name,
		IsActive:    true,
	}
}

// NewTestCreator creates an active creator
func NewTestCreator(id int64, name string) *entities.Creator {
	return &entities.Creator{
		ID:       id,
		GuildID:  TestGuildID,
		Name:     name,
		IsActive: true,
	}
}

// NewCompleteConfig creates a guild config with all roles set
func NewCompleteConfig() *entities.GuildConfig {
	editor, designer, overseer := TestRoleEditor, TestRoleDesigner, TestRoleOverseer
	return &entities.GuildConfig{
		GuildID:        TestGuildID,
		EditorRoleID:   &editor,
		DesignerRoleID: &designer,
		OverseerRoleID: &overseer,
	}
}

// NewOpenRequest creates an open request for the test creator
func NewOpenRequest(category string) *entities.ThumbnailRequest {
	messageID := int64(777)
	return &entities.ThumbnailRequest{
		ID:              uuid.New(),
		GuildID:         TestGuildID,
		CreatorID:       1,
		CreatorName:     TestCreatorName,
		Category:        category,
		SourceURL:       TestSourceURL,
		EditorDiscordID: TestEditorID,
		EditorName:      "bob",
		State:           entities.RequestStateOpen,
		ChannelID:       TestChannelID,
		MessageID:       &messageID,
	}
}

// NewClaimedRequest creates a request claimed by the test designer
func NewClaimedRequest(category string) *entities.ThumbnailRequest {
	request := NewOpenRequest(category)
	designerID := TestDesignerID
	designerName := "carol"
	privateChannel := int64(888)
	request.State = entities.RequestStateClaimed
	request.DesignerID = &designerID
	request.DesignerName = &designerName
	request.PrivateChannelID = &privateChannel
	request.ClaimCount = 1
	return request
}
