package database

import "aptify/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: parents before children so AutoMigrate creates foreign keys
// in one pass.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Achievement{},
		&models.Goal{},
		&models.Course{},
		&models.CourseResource{},
		&models.CourseEnrollment{},
	}
}
