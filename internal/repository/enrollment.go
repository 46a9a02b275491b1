package repository

import (
	"context"
	"errors"

	"aptify/internal/models"

	"gorm.io/gorm"
)

// EnrollmentRepository defines persistence operations for course enrollments.
// The (user, course) unique index is the single authority on duplicates, so
// concurrent enrollment attempts race safely at the database.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.CourseEnrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.CourseEnrollment, error)
	Update(ctx context.Context, enrollment *models.CourseEnrollment) error
	ListByUser(ctx context.Context, userID uint) ([]models.CourseEnrollment, error)
	StatsByUser(ctx context.Context, userID uint) (*models.EnrollmentStats, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository returns a new EnrollmentRepository implementation.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.CourseEnrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateKeyError("Already enrolled in this course")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *enrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.CourseEnrollment) error {
	if err := r.db.WithContext(ctx).Save(enrollment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]models.CourseEnrollment, error) {
	var enrollments []models.CourseEnrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return enrollments, nil
}

func (r *enrollmentRepository) StatsByUser(ctx context.Context, userID uint) (*models.EnrollmentStats, error) {
	stats := &models.EnrollmentStats{}
	base := r.db.WithContext(ctx).Model(&models.CourseEnrollment{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.EnrollmentCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.EnrollmentInProgress).
		Count(&stats.InProgress).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}
