package services

import (
	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite DB for testing.
// TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey, same as the postgres setup.
// SkipDefaultTransaction keeps single Creates out of an implicit
// transaction so a competing insert made from a callback commits
// independently instead of being rolled back with the loser.
func setupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.MessageRecipient{},
		&models.MessageAcknowledgment{},
		&models.AuditEvent{},
	)
}

func makeCoordinator(id string) *models.User {
	user := models.User{
		ID:       id,
		FullName: "Coordinator " + id,
		Username: "coord_" + id,
		Role:     models.RoleCoordinator,
	}
	database.DB.Create(&user)
	return &user
}

func makeCarer(id, coordinatorID string) *models.User {
	user := models.User{
		ID:            id,
		FullName:      "Carer " + id,
		Username:      "carer_" + id,
		Role:          models.RoleCarer,
		CoordinatorID: &coordinatorID,
	}
	database.DB.Create(&user)
	return &user
}
