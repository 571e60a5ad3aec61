package services

import (
	"context"
	"fmt"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	guildConfigRepo interfaces.GuildConfigRepository
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(guildConfigRepo interfaces.GuildConfigRepository) interfaces.GuildConfigService {
	return &guildConfigService{
		guildConfigRepo: guildConfigRepo,
	}
}

// GetConfig returns the guild configuration without creating one
func (s *guildConfigService) GetConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	config, err := s.guildConfigRepo.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if config == nil {
		return nil, ErrConfigMissing
	}
	return config, nil
}

// EnsureConfig retrieves the guild configuration or creates a default one
func (s *guildConfigService) EnsureConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	config, err := s.guildConfigRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild config: %w", err)
	}
	return config, nil
}

// SetRole stores the role used for a staff kind
func (s *guildConfigService) SetRole(ctx context.Context, guildID int64, kind entities.StaffKind, roleID int64) (*entities.GuildConfig, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown staff kind %q", kind)
	}

	config, err := s.guildConfigRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SetRole(kind, &roleID)

	if err := s.guildConfigRepo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update guild config: %w", err)
	}

	return config, nil
}

// ToggleSingleChannel flips single-channel mode
func (s *guildConfigService) ToggleSingleChannel(ctx context.Context, guildID int64) (bool, error) {
	config, err := s.guildConfigRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return false, fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SingleThumbnailChannel = !config.SingleThumbnailChannel

	if err := s.guildConfigRepo.Update(ctx, config); err != nil {
		return false, fmt.Errorf("failed to update guild config: %w", err)
	}

	return config.SingleThumbnailChannel, nil
}

// SetSingleChannel stores the shared channel and turns single-channel mode on
func (s *guildConfigService) SetSingleChannel(ctx context.Context, guildID int64, channelID int64) (*entities.GuildConfig, error) {
	config, err := s.guildConfigRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SingleThumbnailChannelID = &channelID
	config.SingleThumbnailChannel = true

	if err := s.guildConfigRepo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update guild config: %w", err)
	}

	return config, nil
}
