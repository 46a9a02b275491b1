package service

import (
	"context"
	"time"

	"aptify/internal/models"
	"aptify/internal/repository"
)

// EnrollmentService manages a user's course enrollments and progress.
type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	now            func() time.Time
}

// NewEnrollmentService returns a new EnrollmentService.
func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo, now: time.Now}
}

// Enroll enrolls the caller in a published course. Unpublished courses are
// not-found to non-owners; owners get an explicit validation error so they
// learn the course has to be published first. Duplicate enrollments surface
// the unique-index violation from the store.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*models.CourseEnrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.Status != models.CoursePublished {
		if course.UserID == userID {
			return nil, models.NewValidationError("Course is not published")
		}
		return nil, models.NewNotFoundError("Course", courseID)
	}

	enrollment := &models.CourseEnrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.EnrollmentEnrolled,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Course = course
	return enrollment, nil
}

// UpdateProgress records progress on one of the caller's enrollments.
// Reaching 100 completes the enrollment; the first forward movement from
// enrolled marks it in progress. Both timestamps are stamped once and kept on
// later updates.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, userID, courseID uint, progress int, resourcesCompleted *int) (*models.CourseEnrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, models.NewValidationError("Progress must be between 0 and 100")
	}

	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, models.NewNotFoundError("Enrollment", courseID)
	}

	enrollment.Progress = progress
	if resourcesCompleted != nil {
		if *resourcesCompleted < 0 {
			return nil, models.NewValidationError("Resources completed cannot be negative")
		}
		enrollment.ResourcesCompleted = *resourcesCompleted
	}

	now := s.now()
	switch {
	case progress >= 100:
		enrollment.Status = models.EnrollmentCompleted
		if enrollment.CompletedAt == nil {
			enrollment.CompletedAt = &now
		}
		if enrollment.StartedAt == nil {
			enrollment.StartedAt = &now
		}
	case progress > 0 && enrollment.Status == models.EnrollmentEnrolled:
		enrollment.Status = models.EnrollmentInProgress
		if enrollment.StartedAt == nil {
			enrollment.StartedAt = &now
		}
	}

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListEnrollments returns the caller's enrollments, most recent first, with
// the course attached.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, userID uint) ([]models.CourseEnrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

// GetEnrollmentStats returns enrollment counts for the caller.
func (s *EnrollmentService) GetEnrollmentStats(ctx context.Context, userID uint) (*models.EnrollmentStats, error) {
	return s.enrollmentRepo.StatsByUser(ctx, userID)
}
