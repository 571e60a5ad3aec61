package testhelpers

import (
	"context"
	"time"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetByGuildID(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Update(ctx context.Context, config *entities.GuildConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) GetGuildsWithRoles(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCreatorRepository is a mock implementation of CreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) GetByName(ctx context.Context, name string) (*entities.Creator, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetActiveByName(ctx context.Context, name string) (*entities.Creator, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetByID(ctx context.Context, id int64) (*entities.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) Create(ctx context.Context, name string) (*entities.Creator, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) Update(ctx context.Context, creator *entities.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *MockCreatorRepository) ListActive(ctx context.Context) ([]*entities.Creator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) SearchActive(ctx context.Context, term string, limit int) ([]*entities.Creator, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Creator), args.Error(1)
}

// MockStaffRepository is a mock implementation of StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetByDiscordID(ctx context.Context, kind entities.StaffKind, discordID int64) (*entities.StaffMember, error) {
	args := m.Called(ctx, kind, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) GetActiveByDiscordID(ctx context.Context, kind entities.StaffKind, discordID int64) (*entities.StaffMember, error) {
	args := m.Called(ctx, kind, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id int64) (*entities.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) Create(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) (*entities.StaffMember, error) {
	args := m.Called(ctx, kind, discordID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) Update(ctx context.Context, member *entities.StaffMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockStaffRepository) ListActive(ctx context.Context, kind entities.StaffKind) ([]*entities.StaffMember, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) SearchActive(ctx context.Context, kind entities.StaffKind, term string, limit int) ([]*entities.StaffMember, error) {
	args := m.Called(ctx, kind, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StaffMember), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetActiveByName(ctx context.Context, name string) (*entities.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, name string, channelID *int64) (*entities.Category, error) {
	args := m.Called(ctx, name, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) SearchActive(ctx context.Context, term string, limit int) ([]*entities.Category, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Exists(ctx context.Context, editorID, creatorID int64) (bool, error) {
	args := m.Called(ctx, editorID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) Create(ctx context.Context, editorID, creatorID int64) error {
	args := m.Called(ctx, editorID, creatorID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, editorID, creatorID int64) (bool, error) {
	args := m.Called(ctx, editorID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) ListCreatorsForEditor(ctx context.Context, editorID int64) ([]*entities.Creator, error) {
	args := m.Called(ctx, editorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Creator), args.Error(1)
}

func (m *MockAssignmentRepository) ListEditorsForCreator(ctx context.Context, creatorID int64) ([]*entities.StaffMember, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StaffMember), args.Error(1)
}

// MockThumbnailRequestRepository is a mock implementation of ThumbnailRequestRepository
type MockThumbnailRequestRepository struct {
	mock.Mock
}

func (m *MockThumbnailRequestRepository) Create(ctx context.Context, request *entities.ThumbnailRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockThumbnailRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ThumbnailRequest), args.Error(1)
}

func (m *MockThumbnailRequestRepository) UpdateIfState(ctx context.Context, request *entities.ThumbnailRequest, expected entities.RequestState) (bool, error) {
	args := m.Called(ctx, request, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockThumbnailRequestRepository) SetPublicMessage(ctx context.Context, id uuid.UUID, messageID *int64) error {
	args := m.Called(ctx, id, messageID)
	return args.Error(0)
}

func (m *MockThumbnailRequestRepository) SetClaimResources(ctx context.Context, id uuid.UUID, privateChannelID, controlMessageID *int64) error {
	args := m.Called(ctx, id, privateChannelID, controlMessageID)
	return args.Error(0)
}

func (m *MockThumbnailRequestRepository) ListByState(ctx context.Context, state entities.RequestState, limit int) ([]*entities.ThumbnailRequest, error) {
	args := m.Called(ctx, state, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ThumbnailRequest), args.Error(1)
}

// MockThumbnailRecordRepository is a mock implementation of ThumbnailRecordRepository
type MockThumbnailRecordRepository struct {
	mock.Mock
}

func (m *MockThumbnailRecordRepository) Create(ctx context.Context, record *entities.ThumbnailRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockThumbnailRecordRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*entities.ThumbnailRecord, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ThumbnailRecord), args.Error(1)
}

func (m *MockThumbnailRecordRepository) ListForExport(ctx context.Context, from, to time.Time) ([]*entities.ThumbnailRecordExportRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ThumbnailRecordExportRow), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
