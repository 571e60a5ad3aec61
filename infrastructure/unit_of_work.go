package infrastructure

import (
	"context"

	"thumbnailbot/application"
	"thumbnailbot/domain/interfaces"
)

// unitOfWork wraps the repository UnitOfWork and adds event publishing on commit
type unitOfWork struct {
	inner                  application.UnitOfWork
	transactionalPublisher *NATSTransactionalPublisher
	ctx                    context.Context
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	u.ctx = ctx
	return u.inner.Begin(ctx)
}

// Commit commits the transaction and flushes events on success
func (u *unitOfWork) Commit() error {
	if err := u.inner.Commit(); err != nil {
		return err
	}

	// Events are best-effort once the database transaction has committed
	_ = u.transactionalPublisher.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	u.transactionalPublisher.Discard()
	return u.inner.Rollback()
}

// Repository getters - delegate to inner UnitOfWork
func (u *unitOfWork) GuildConfigRepository() interfaces.GuildConfigRepository {
	return u.inner.GuildConfigRepository()
}

func (u *unitOfWork) CreatorRepository() interfaces.CreatorRepository {
	return u.inner.CreatorRepository()
}

func (u *unitOfWork) StaffRepository() interfaces.StaffRepository {
	return u.inner.StaffRepository()
}

func (u *unitOfWork) CategoryRepository() interfaces.CategoryRepository {
	return u.inner.CategoryRepository()
}

func (u *unitOfWork) AssignmentRepository() interfaces.AssignmentRepository {
	return u.inner.AssignmentRepository()
}

func (u *unitOfWork) ThumbnailRequestRepository() interfaces.ThumbnailRequestRepository {
	return u.inner.ThumbnailRequestRepository()
}

func (u *unitOfWork) RequestTransitionRepository() interfaces.RequestTransitionRepository {
	return u.inner.RequestTransitionRepository()
}

func (u *unitOfWork) ThumbnailRecordRepository() interfaces.ThumbnailRecordRepository {
	return u.inner.ThumbnailRecordRepository()
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.inner.EventBus()
}
