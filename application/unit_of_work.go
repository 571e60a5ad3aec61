package application

import (
	"context"

	"thumbnailbot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	GuildConfigRepository() interfaces.GuildConfigRepository
	CreatorRepository() interfaces.CreatorRepository
	StaffRepository() interfaces.StaffRepository
	CategoryRepository() interfaces.CategoryRepository
	AssignmentRepository() interfaces.AssignmentRepository
	ThumbnailRequestRepository() interfaces.ThumbnailRequestRepository
	RequestTransitionRepository() interfaces.RequestTransitionRepository
	ThumbnailRecordRepository() interfaces.ThumbnailRecordRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork instance scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}
