package repository

import (
	"testing"

	"aptify/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Achievement{},
		&models.Goal{},
		&models.Course{},
		&models.CourseResource{},
		&models.CourseEnrollment{},
	), "migrate sqlite")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, code string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		UserCode: code,
		Role:     models.RoleCandidate,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
