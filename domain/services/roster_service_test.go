package services

import (
	"context"
	"errors"
	"testing"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRosterServiceWithMocks(m *TestMocks) interfaces.RosterService {
	return NewRosterService(TestGuildID, m.CreatorRepo, m.StaffRepo, m.CategoryRepo, m.EventPublisher)
}

func TestRosterService_AddCreator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		setupMocks  func(*TestMocks)
		wantResult  interfaces.RosterResult
		wantID      int64
		wantErr     error
		errContains string
	}{
		{
			name:  "creates new creator",
			input: "Alice",
			setupMocks: func(m *TestMocks) {
				m.CreatorRepo.On("GetByName", mock.Anything, "Alice").Return(nil, nil)
				m.CreatorRepo.On("Create", mock.Anything, "Alice").Return(NewTestCreator(7, "Alice"), nil)
				NewMockHelper(m).ExpectEventPublish(events.EventTypeRosterChanged)
			},
			wantResult: interfaces.RosterCreated,
			wantID:     7,
		},
		{
			name:  "active creator already exists",
			input: "alice",
			setupMocks: func(m *TestMocks) {
				m.CreatorRepo.On("GetByName", mock.Anything, "alice").Return(NewTestCreator(7, "Alice"), nil)
			},
			wantErr: &AlreadyExistsError{Entity: EntityCreator},
		},
		{
			name:  "inactive creator is reactivated with the same id",
			input: "  Alice ",
			setupMocks: func(m *TestMocks) {
				inactive := NewTestCreator(7, "Alice")
				inactive.IsActive = false
				m.CreatorRepo.On("GetByName", mock.Anything, "Alice").Return(inactive, nil)
				m.CreatorRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Creator) bool {
					return c.ID == 7 && c.IsActive
				})).Return(nil)
				NewMockHelper(m).ExpectEventPublish(events.EventTypeRosterChanged)
			},
			wantResult: interfaces.RosterReactivated,
			wantID:     7,
		},
		{
			name:    "blank name rejected",
			input:   "   ",
			wantErr: ErrInvalidName,
		},
		{
			name:  "repository error is wrapped",
			input: "Alice",
			setupMocks: func(m *TestMocks) {
				m.CreatorRepo.On("GetByName", mock.Anything, "Alice").Return(nil, errors.New("connection reset"))
			},
			errContains: "failed to look up creator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			if tt.setupMocks != nil {
				tt.setupMocks(mocks)
			}
			service := newRosterServiceWithMocks(mocks)

			creator, result, err := service.AddCreator(context.Background(), tt.input)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Nil(t, creator)
			case tt.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantResult, result)
				assert.Equal(t, tt.wantID, creator.ID)
				assert.True(t, creator.IsActive)
			}

			mocks.AssertAllExpectations(t)
		})
	}
}

func TestRosterService_RemoveCreator(t *testing.T) {
	t.Parallel()

	t.Run("deactivates active creator", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		mocks.CreatorRepo.On("GetActiveByName", mock.Anything, "Alice").Return(NewTestCreator(7, "Alice"), nil)
		mocks.CreatorRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Creator) bool {
			return c.ID == 7 && !c.IsActive
		})).Return(nil)
		NewMockHelper(mocks).ExpectEventPublish(events.EventTypeRosterChanged)

		err := newRosterServiceWithMocks(mocks).RemoveCreator(context.Background(), "Alice")

		require.NoError(t, err)
		mocks.AssertAllExpectations(t)
	})

	t.Run("missing creator is not found", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		mocks.CreatorRepo.On("GetActiveByName", mock.Anything, "Nobody").Return(nil, nil)

		err := newRosterServiceWithMocks(mocks).RemoveCreator(context.Background(), "Nobody")

		assert.True(t, IsNotFound(err, EntityCreator))
		mocks.AssertAllExpectations(t)
	})
}

func TestRosterService_AddStaff(t *testing.T) {
	t.Parallel()

	t.Run("reactivation refreshes display name", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		inactive := NewTestStaff(3, entities.StaffKindDesigner, TestDesignerID, "old-name")
		inactive.IsActive = false
		mocks.StaffRepo.On("GetByDiscordID", mock.Anything, entities.StaffKindDesigner, TestDesignerID).Return(inactive, nil)
		mocks.StaffRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *entities.StaffMember) bool {
			return s.ID == 3 && s.IsActive && s.DisplayName == "carol"
		})).Return(nil)
		NewMockHelper(mocks).ExpectEventPublish(events.EventTypeRosterChanged)

		member, result, err := newRosterServiceWithMocks(mocks).AddStaff(context.Background(), entities.StaffKindDesigner, TestDesignerID, "carol")

		require.NoError(t, err)
		assert.Equal(t, interfaces.RosterReactivated, result)
		assert.Equal(t, int64(3), member.ID)
		mocks.AssertAllExpectations(t)
	})

	t.Run("already active editor", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		mocks.StaffRepo.On("GetByDiscordID", mock.Anything, entities.StaffKindEditor, TestEditorID).
			Return(NewTestStaff(1, entities.StaffKindEditor, TestEditorID, "bob"), nil)

		_, _, err := newRosterServiceWithMocks(mocks).AddStaff(context.Background(), entities.StaffKindEditor, TestEditorID, "bob")

		var exists *AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "editor", exists.Entity)
		mocks.AssertAllExpectations(t)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()

		_, _, err := newRosterServiceWithMocks(mocks).AddStaff(context.Background(), entities.StaffKind("janitor"), 1, "x")

		assert.Error(t, err)
	})
}

func TestRosterService_AddCategory(t *testing.T) {
	t.Parallel()

	t.Run("normalizes name on create", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		channelID := TestChannelID
		mocks.CategoryRepo.On("GetByName", mock.Anything, "gaming").Return(nil, nil)
		mocks.CategoryRepo.On("Create", mock.Anything, "gaming", &channelID).
			Return(&entities.Category{ID: 4, Name: "gaming", ChannelID: &channelID, IsActive: true}, nil)
		NewMockHelper(mocks).ExpectEventPublish(events.EventTypeRosterChanged)

		category, result, err := newRosterServiceWithMocks(mocks).AddCategory(context.Background(), " Gaming ", &channelID)

		require.NoError(t, err)
		assert.Equal(t, interfaces.RosterCreated, result)
		assert.Equal(t, "gaming", category.Name)
		mocks.AssertAllExpectations(t)
	})

	t.Run("reactivation applies new channel", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		oldChannel := int64(1)
		newChannel := int64(2)
		inactive := &entities.Category{ID: 4, Name: "gaming", ChannelID: &oldChannel}
		mocks.CategoryRepo.On("GetByName", mock.Anything, "gaming").Return(inactive, nil)
		mocks.CategoryRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Category) bool {
			return c.ID == 4 && c.IsActive && *c.ChannelID == newChannel
		})).Return(nil)
		NewMockHelper(mocks).ExpectEventPublish(events.EventTypeRosterChanged)

		category, result, err := newRosterServiceWithMocks(mocks).AddCategory(context.Background(), "gaming", &newChannel)

		require.NoError(t, err)
		assert.Equal(t, interfaces.RosterReactivated, result)
		assert.Equal(t, int64(4), category.ID)
		mocks.AssertAllExpectations(t)
	})

	t.Run("set channel on missing category", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		mocks.CategoryRepo.On("GetActiveByName", mock.Anything, "music").Return(nil, nil)

		_, err := newRosterServiceWithMocks(mocks).SetCategoryChannel(context.Background(), "Music", TestChannelID)

		assert.True(t, IsNotFound(err, EntityCategory))
		mocks.AssertAllExpectations(t)
	})
}

func TestRosterService_RefreshDisplayName(t *testing.T) {
	t.Parallel()

	mocks := NewTestMocks()
	member := NewTestStaff(5, entities.StaffKindOverseer, TestOverseerID, "dave")
	mocks.StaffRepo.On("GetActiveByDiscordID", mock.Anything, entities.StaffKindOverseer, TestOverseerID).Return(member, nil)

	err := newRosterServiceWithMocks(mocks).RefreshDisplayName(context.Background(), entities.StaffKindOverseer, TestOverseerID, "dave")

	require.NoError(t, err)
	mocks.StaffRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mocks.AssertAllExpectations(t)
}
