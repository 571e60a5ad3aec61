package services

import (
	"context"
	"testing"

	"thumbnailbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoutingResolver_ResolveDestination(t *testing.T) {
	t.Parallel()

	channelID := TestChannelID
	singleChannel := int64(4242)

	tests := []struct {
		name        string
		category    string
		config      func() *entities.GuildConfig
		setupMocks  func(*TestMocks)
		wantErr     error
		wantMissing []string
		wantChannel int64
		wantLabel   string
	}{
		{
			name:    "no config",
			config:  func() *entities.GuildConfig { return nil },
			wantErr: ErrConfigMissing,
		},
		{
			name: "missing overseer role",
			config: func() *entities.GuildConfig {
				c := NewCompleteConfig()
				c.OverseerRoleID = nil
				return c
			},
			wantMissing: []string{"Overseer"},
		},
		{
			name: "roles checked before channel mode",
			config: func() *entities.GuildConfig {
				return &entities.GuildConfig{GuildID: TestGuildID, SingleThumbnailChannel: true}
			},
			wantMissing: []string{"Editor", "Designer", "Overseer"},
		},
		{
			name: "single mode without channel",
			config: func() *entities.GuildConfig {
				c := NewCompleteConfig()
				c.SingleThumbnailChannel = true
				return c
			},
			wantErr: ErrChannelUnset,
		},
		{
			name:     "single mode keeps unknown label",
			category: "Whatever",
			config: func() *entities.GuildConfig {
				c := NewCompleteConfig()
				c.SingleThumbnailChannel = true
				c.SingleThumbnailChannelID = &singleChannel
				return c
			},
			wantChannel: singleChannel,
			wantLabel:   "Whatever",
		},
		{
			name:    "category mode needs a category",
			config:  NewCompleteConfig,
			wantErr: ErrCategoryRequired,
		},
		{
			name:     "unknown category",
			category: "cooking",
			config:   NewCompleteConfig,
			setupMocks: func(m *TestMocks) {
				m.CategoryRepo.On("GetActiveByName", mock.Anything, "cooking").Return(nil, nil)
			},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:     "category without channel",
			category: "gaming",
			config:   NewCompleteConfig,
			setupMocks: func(m *TestMocks) {
				m.CategoryRepo.On("GetActiveByName", mock.Anything, "gaming").
					Return(&entities.Category{ID: 1, Name: "gaming", IsActive: true}, nil)
			},
			wantErr: ErrCategoryChannelUnset,
		},
		{
			name:     "category channel",
			category: "Gaming",
			config:   NewCompleteConfig,
			setupMocks: func(m *TestMocks) {
				m.CategoryRepo.On("GetActiveByName", mock.Anything, "gaming").
					Return(&entities.Category{ID: 1, Name: "gaming", ChannelID: &channelID, IsActive: true}, nil)
			},
			wantChannel: channelID,
			wantLabel:   "gaming",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			NewMockHelper(mocks).ExpectGuildConfig(tt.config())
			if tt.setupMocks != nil {
				tt.setupMocks(mocks)
			}
			resolver := NewRoutingResolver(mocks.GuildConfigRepo, mocks.CategoryRepo)

			dest, err := resolver.ResolveDestination(context.Background(), TestGuildID, tt.category)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, dest)
			case tt.wantMissing != nil:
				var incomplete *RolesIncompleteError
				require.ErrorAs(t, err, &incomplete)
				assert.Equal(t, tt.wantMissing, incomplete.Missing)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantChannel, dest.ChannelID)
				assert.Equal(t, tt.wantLabel, dest.Category)
			}

			mocks.AssertAllExpectations(t)
		})
	}
}

func TestRoutingResolver_CheckPanelReady(t *testing.T) {
	t.Parallel()

	t.Run("category mode without categories", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		NewMockHelper(mocks).ExpectGuildConfig(NewCompleteConfig())
		mocks.CategoryRepo.On("CountActive", mock.Anything).Return(0, nil)

		_, err := NewRoutingResolver(mocks.GuildConfigRepo, mocks.CategoryRepo).CheckPanelReady(context.Background(), TestGuildID)

		assert.ErrorIs(t, err, ErrNoCategories)
		mocks.AssertAllExpectations(t)
	})

	t.Run("category mode with categories", func(t *testing.T) {
		t.Parallel()
		mocks := NewTestMocks()
		NewMockHelper(mocks).ExpectGuildConfig(NewCompleteConfig())
		mocks.CategoryRepo.On("CountActive", mock.Anything).Return(2, nil)

		config, err := NewRoutingResolver(mocks.GuildConfigRepo, mocks.CategoryRepo).CheckPanelReady(context.Background(), TestGuildID)

		require.NoError(t, err)
		assert.Equal(t, TestGuildID, config.GuildID)
		mocks.AssertAllExpectations(t)
	})
}
