package repository

import (
	"thumbnailbot/application"
	"thumbnailbot/database"
	"thumbnailbot/domain/interfaces"
)

// CreateTestUnitOfWork creates a unit of work for testing with the provided publisher
func CreateTestUnitOfWork(db *database.DB, guildID int64, publisher interfaces.EventPublisher) application.UnitOfWork {
	return NewUnitOfWorkFactory(db).CreateForGuildWithPublisher(guildID, publisher)
}
