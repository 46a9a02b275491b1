package service

import (
	"context"
	"testing"
	"time"

	"aptify/internal/models"
	"aptify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(t *testing.T, now time.Time) (*EnrollmentService, *CourseService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	enrollments := NewEnrollmentService(enrollmentRepo, courseRepo)
	enrollments.now = fixedNow(now)
	courses := NewCourseService(courseRepo, enrollmentRepo)
	courses.now = fixedNow(now)
	return enrollments, courses, db
}

func publishedCourse(t *testing.T, courses *CourseService, ownerID uint, name string) *models.Course {
	t.Helper()
	ctx := context.Background()
	course, err := courses.CreateCourse(ctx, ownerID, CourseInput{Name: name})
	require.NoError(t, err)
	course, err = courses.PublishCourse(ctx, ownerID, course.ID)
	require.NoError(t, err)
	return course
}

func TestEnrollInPublishedCourse(t *testing.T) {
	svc, courses, db := newEnrollmentService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	course := publishedCourse(t, courses, owner.ID, "Go from scratch")

	enrollment, err := svc.Enroll(context.Background(), learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	assert.Zero(t, enrollment.Progress)
	require.NotNil(t, enrollment.Course)
	assert.Equal(t, "Go from scratch", enrollment.Course.Name)
}

func TestEnrollDuplicateIsConflict(t *testing.T) {
	svc, courses, db := newEnrollmentService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	course := publishedCourse(t, courses, owner.ID, "Go from scratch")
	ctx := context.Background()

	_, err := svc.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, learner.ID, course.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "DUPLICATE_KEY", appErr.Code)
}

func TestEnrollInDraftCourse(t *testing.T) {
	svc, courses, db := newEnrollmentService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	other := createTestUser(t, db, "grace", "87654321")
	ctx := context.Background()

	draft, err := courses.CreateCourse(ctx, owner.ID, CourseInput{Name: "WIP"})
	require.NoError(t, err)

	// The owner is told the course needs publishing first.
	_, err = svc.Enroll(ctx, owner.ID, draft.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "Course is not published", appErr.Message)

	// Everyone else cannot tell the draft exists at all.
	_, err = svc.Enroll(ctx, other.ID, draft.ID)
	require.Error(t, err)
	appErr, ok = err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUpdateProgressTransitions(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, courses, db := newEnrollmentService(t, start)
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	course := publishedCourse(t, courses, owner.ID, "Go from scratch")
	ctx := context.Background()

	_, err := svc.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	// First forward movement: enrolled -> in_progress, started stamped.
	enrollment, err := svc.UpdateProgress(ctx, learner.ID, course.ID, 25, nil)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentInProgress, enrollment.Status)
	require.NotNil(t, enrollment.StartedAt)
	assert.True(t, enrollment.StartedAt.Equal(start))
	assert.Nil(t, enrollment.CompletedAt)

	// Later progress keeps the original start stamp.
	svc.now = fixedNow(start.Add(24 * time.Hour))
	enrollment, err = svc.UpdateProgress(ctx, learner.ID, course.ID, 60, nil)
	require.NoError(t, err)
	require.NotNil(t, enrollment.StartedAt)
	assert.True(t, enrollment.StartedAt.Equal(start))

	// Reaching 100 completes and stamps completion.
	finish := start.Add(72 * time.Hour)
	svc.now = fixedNow(finish)
	done := 12
	enrollment, err = svc.UpdateProgress(ctx, learner.ID, course.ID, 100, &done)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
	assert.Equal(t, 12, enrollment.ResourcesCompleted)
	require.NotNil(t, enrollment.CompletedAt)
	assert.True(t, enrollment.CompletedAt.Equal(finish))

	// Re-submitting 100 keeps the first completion stamp.
	svc.now = fixedNow(finish.Add(time.Hour))
	enrollment, err = svc.UpdateProgress(ctx, learner.ID, course.ID, 100, nil)
	require.NoError(t, err)
	require.NotNil(t, enrollment.CompletedAt)
	assert.True(t, enrollment.CompletedAt.Equal(finish))
}

func TestUpdateProgressJumpStraightToHundredStampsBoth(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, courses, db := newEnrollmentService(t, now)
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	course := publishedCourse(t, courses, owner.ID, "Go from scratch")
	ctx := context.Background()

	_, err := svc.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	enrollment, err := svc.UpdateProgress(ctx, learner.ID, course.ID, 100, nil)
	require.NoError(t, err)
	require.NotNil(t, enrollment.StartedAt)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestUpdateProgressValidation(t *testing.T) {
	svc, courses, db := newEnrollmentService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	course := publishedCourse(t, courses, owner.ID, "Go from scratch")
	ctx := context.Background()

	// No enrollment yet.
	_, err := svc.UpdateProgress(ctx, learner.ID, course.ID, 50, nil)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	_, err = svc.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, learner.ID, course.ID, 101, nil)
	require.Error(t, err)
	appErr, ok = err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	negative := -1
	_, err = svc.UpdateProgress(ctx, learner.ID, course.ID, 10, &negative)
	require.Error(t, err)
	appErr, ok = err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestListEnrollmentsAndStats(t *testing.T) {
	svc, courses, db := newEnrollmentService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	ctx := context.Background()

	first := publishedCourse(t, courses, owner.ID, "first")
	second := publishedCourse(t, courses, owner.ID, "second")

	_, err := svc.Enroll(ctx, learner.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, learner.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.UpdateProgress(ctx, learner.ID, first.ID, 100, nil)
	require.NoError(t, err)

	enrollments, err := svc.ListEnrollments(ctx, learner.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)

	stats, err := svc.GetEnrollmentStats(ctx, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(0), stats.InProgress)
}
