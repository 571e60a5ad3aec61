package repository

import (
	"context"
	"fmt"

	"thumbnailbot/application"
	"thumbnailbot/database"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const notStartedMessage = "unit of work not started - call Begin() first"

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db              *database.DB
	tx              pgx.Tx
	ctx             context.Context
	guildID         int64
	eventPublisher  interfaces.EventPublisher
	guildConfigRepo interfaces.GuildConfigRepository
	creatorRepo     interfaces.CreatorRepository
	staffRepo       interfaces.StaffRepository
	categoryRepo    interfaces.CategoryRepository
	assignmentRepo  interfaces.AssignmentRepository
	requestRepo     interfaces.ThumbnailRequestRepository
	transitionRepo  interfaces.RequestTransitionRepository
	recordRepo      interfaces.ThumbnailRecordRepository
}

// UnitOfWorkFactory creates guild-scoped units of work over one database
type UnitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db: db,
	}
}

// CreateForGuild creates a UnitOfWork whose events are dropped
func (f *UnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	return f.CreateForGuildWithPublisher(guildID, discardPublisher{})
}

// CreateForGuildWithPublisher creates a UnitOfWork that hands events to publisher.
// The caller decides when buffered events leave the process.
func (f *UnitOfWorkFactory) CreateForGuildWithPublisher(guildID int64, publisher interfaces.EventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:             f.db,
		guildID:        guildID,
		eventPublisher: publisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create guild-scoped repositories with the transaction
	u.guildConfigRepo = NewGuildConfigRepositoryWithTx(tx) // Guild configs are keyed by guild id already
	u.creatorRepo = NewCreatorRepositoryScoped(tx, u.guildID)
	u.staffRepo = NewStaffRepositoryScoped(tx, u.guildID)
	u.categoryRepo = NewCategoryRepositoryScoped(tx, u.guildID)
	u.assignmentRepo = NewAssignmentRepositoryScoped(tx, u.guildID)
	u.requestRepo = NewThumbnailRequestRepositoryScoped(tx, u.guildID)
	u.transitionRepo = NewRequestTransitionRepositoryScoped(tx, u.guildID)
	u.recordRepo = NewThumbnailRecordRepositoryScoped(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// GuildConfigRepository returns the guild config repository for this unit of work
func (u *unitOfWork) GuildConfigRepository() interfaces.GuildConfigRepository {
	if u.guildConfigRepo == nil {
		panic(notStartedMessage)
	}
	return u.guildConfigRepo
}

// CreatorRepository returns the creator repository for this unit of work
func (u *unitOfWork) CreatorRepository() interfaces.CreatorRepository {
	if u.creatorRepo == nil {
		panic(notStartedMessage)
	}
	return u.creatorRepo
}

// StaffRepository returns the staff repository for this unit of work
func (u *unitOfWork) StaffRepository() interfaces.StaffRepository {
	if u.staffRepo == nil {
		panic(notStartedMessage)
	}
	return u.staffRepo
}

// CategoryRepository returns the category repository for this unit of work
func (u *unitOfWork) CategoryRepository() interfaces.CategoryRepository {
	if u.categoryRepo == nil {
		panic(notStartedMessage)
	}
	return u.categoryRepo
}

// AssignmentRepository returns the assignment repository for this unit of work
func (u *unitOfWork) AssignmentRepository() interfaces.AssignmentRepository {
	if u.assignmentRepo == nil {
		panic(notStartedMessage)
	}
	return u.assignmentRepo
}

// ThumbnailRequestRepository returns the request repository for this unit of work
func (u *unitOfWork) ThumbnailRequestRepository() interfaces.ThumbnailRequestRepository {
	if u.requestRepo == nil {
		panic(notStartedMessage)
	}
	return u.requestRepo
}

// RequestTransitionRepository returns the transition log repository for this unit of work
func (u *unitOfWork) RequestTransitionRepository() interfaces.RequestTransitionRepository {
	if u.transitionRepo == nil {
		panic(notStartedMessage)
	}
	return u.transitionRepo
}

// ThumbnailRecordRepository returns the record repository for this unit of work
func (u *unitOfWork) ThumbnailRecordRepository() interfaces.ThumbnailRecordRepository {
	if u.recordRepo == nil {
		panic(notStartedMessage)
	}
	return u.recordRepo
}

// EventBus returns the event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.tx == nil {
		panic(notStartedMessage)
	}
	return u.eventPublisher
}

type discardPublisher struct{}

func (discardPublisher) Publish(events.Event) error { return nil }
