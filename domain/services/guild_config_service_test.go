package services

import (
	"context"
	"errors"
	"testing"

	"thumbnailbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigService_SetRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		kind        entities.StaffKind
		setupMock   func(*TestMocks)
		wantErr     bool
		errContains string
	}{
		{
			name: "sets overseer role on fresh config",
			kind: entities.StaffKindOverseer,
			setupMock: func(m *TestMocks) {
				m.GuildConfigRepo.On("GetOrCreate", mock.Anything, TestGuildID).Return(&entities.GuildConfig{GuildID: TestGuildID}, nil)
				m.GuildConfigRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.GuildConfig) bool {
					return c.OverseerRoleID != nil && *c.OverseerRoleID == 99 && c.EditorRoleID == nil
				})).Return(nil)
			},
		},
		{
			name:        "unknown kind",
			kind:        entities.StaffKind("moderator"),
			setupMock:   func(m *TestMocks) {},
			wantErr:     true,
			errContains: "unknown staff kind",
		},
		{
			name: "repository error",
			kind: entities.StaffKindEditor,
			setupMock: func(m *TestMocks) {
				m.GuildConfigRepo.On("GetOrCreate", mock.Anything, TestGuildID).Return(nil, errors.New("database connection failed"))
			},
			wantErr:     true,
			errContains: "failed to get guild config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			tt.setupMock(mocks)
			service := NewGuildConfigService(mocks.GuildConfigRepo)

			config, err := service.SetRole(context.Background(), TestGuildID, tt.kind, 99)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, config)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(99), *config.RoleIDFor(tt.kind))
			}

			mocks.GuildConfigRepo.AssertExpectations(t)
		})
	}
}

func TestGuildConfigService_ToggleSingleChannel(t *testing.T) {
	t.Parallel()

	mocks := NewTestMocks()
	mocks.GuildConfigRepo.On("GetOrCreate", mock.Anything, TestGuildID).Return(&entities.GuildConfig{GuildID: TestGuildID}, nil)
	mocks.GuildConfigRepo.On("Update", mock.Anything, mock.AnythingOfType("*entities.GuildConfig")).Return(nil)

	enabled, err := NewGuildConfigService(mocks.GuildConfigRepo).ToggleSingleChannel(context.Background(), TestGuildID)

	require.NoError(t, err)
	assert.True(t, enabled)
	mocks.GuildConfigRepo.AssertExpectations(t)
}

func TestGuildConfigService_SetSingleChannelEnablesMode(t *testing.T) {
	t.Parallel()

	mocks := NewTestMocks()
	mocks.GuildConfigRepo.On("GetOrCreate", mock.Anything, TestGuildID).Return(&entities.GuildConfig{GuildID: TestGuildID}, nil)
	mocks.GuildConfigRepo.On("Update", mock.Anything, mock.AnythingOfType("*entities.GuildConfig")).Return(nil)

	config, err := NewGuildConfigService(mocks.GuildConfigRepo).SetSingleChannel(context.Background(), TestGuildID, TestChannelID)

	require.NoError(t, err)
	assert.True(t, config.SingleThumbnailChannel)
	assert.Equal(t, TestChannelID, *config.SingleThumbnailChannelID)
}

func TestGuildConfigService_GetConfigMissing(t *testing.T) {
	t.Parallel()

	mocks := NewTestMocks()
	mocks.GuildConfigRepo.On("GetByGuildID", mock.Anything, TestGuildID).Return(nil, nil)

	_, err := NewGuildConfigService(mocks.GuildConfigRepo).GetConfig(context.Background(), TestGuildID)

	assert.ErrorIs(t, err, ErrConfigMissing)
}
