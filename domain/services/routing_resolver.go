package services

import (
	"context"
	"fmt"
	"strings"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
)

// routingResolver implements the RoutingResolver interface
type routingResolver struct {
	guildConfigRepo interfaces.GuildConfigRepository
	categoryRepo    interfaces.CategoryRepository
}

// NewRoutingResolver creates a new routing resolver
func NewRoutingResolver(guildConfigRepo interfaces.GuildConfigRepository, categoryRepo interfaces.CategoryRepository) interfaces.RoutingResolver {
	return &routingResolver{
		guildConfigRepo: guildConfigRepo,
		categoryRepo:    categoryRepo,
	}
}

// ResolveDestination decides where a request for categoryName is posted.
// Role checks always run before any mode specific check.
func (r *routingResolver) ResolveDestination(ctx context.Context, guildID int64, categoryName string) (*interfaces.Destination, error) {
	config, err := r.readyConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSpace(categoryName)
	if err := checkLength(FieldCategory, label, MaxNameLength); err != nil {
		return nil, err
	}

	if config.SingleThumbnailChannel {
		if !config.HasSingleChannel() {
			return nil, ErrChannelUnset
		}
		return &interfaces.Destination{
			ChannelID:     *config.SingleThumbnailChannelID,
			Category:      label,
			SingleChannel: true,
		}, nil
	}

	name := entities.NormalizeCategoryName(label)
	if name == "" {
		return nil, ErrCategoryRequired
	}

	category, err := r.categoryRepo.GetActiveByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if !category.HasChannel() {
		return nil, ErrCategoryChannelUnset
	}

	return &interfaces.Destination{
		ChannelID: *category.ChannelID,
		Category:  category.Name,
	}, nil
}

// CheckPanelReady verifies roles and channel mode before the request panel is posted
func (r *routingResolver) CheckPanelReady(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	config, err := r.readyConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if config.SingleThumbnailChannel {
		if !config.HasSingleChannel() {
			return nil, ErrChannelUnset
		}
		return config, nil
	}

	count, err := r.categoryRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if count == 0 {
		return nil, ErrNoCategories
	}

	return config, nil
}

func (r *routingResolver) readyConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	config, err := r.guildConfigRepo.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if config == nil {
		return nil, ErrConfigMissing
	}
	if missing := config.MissingRoles(); len(missing) > 0 {
		return nil, &RolesIncompleteError{Missing: missing}
	}
	return config, nil
}
