// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// newTestDB opens a fresh in-memory database with the full schema. A
// single connection keeps the in-memory database alive for the test's
// duration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Participant{},
		&models.Lot{},
		&models.LotBalance{},
		&models.Transfer{},
		&models.LedgerEvent{},
		&models.AuditLog{},
	))

	return db
}

// adminActor is a caller that passes the administrator check without
// touching the database.
func adminActor() *models.User {
	return &models.User{UserType: models.UserTypeAdmin}
}
