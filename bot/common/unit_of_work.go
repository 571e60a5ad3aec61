package common

import (
	"context"
	"fmt"

	"thumbnailbot/application"
)

// RunInGuild runs fn inside a guild-scoped unit of work and commits when it succeeds
func RunInGuild(ctx context.Context, factory application.UnitOfWorkFactory, guildID int64, fn func(uow application.UnitOfWork) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GuildID parses the guild of an interaction
func GuildID(guildID string) (int64, error) {
	if guildID == "" {
		return 0, fmt.Errorf("interaction is not in a guild")
	}
	return ParseSnowflake(guildID)
}
