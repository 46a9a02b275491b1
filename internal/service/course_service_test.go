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

func newCourseService(t *testing.T, now time.Time) (*CourseService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCourseService(repository.NewCourseRepository(db), repository.NewEnrollmentRepository(db))
	svc.now = fixedNow(now)
	return svc, db
}

func TestCreateCourseAlwaysStartsAsDraft(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	user := createTestUser(t, db, "ada", "12345678")

	course, err := svc.CreateCourse(context.Background(), user.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)
	assert.Equal(t, models.CourseDraft, course.Status)
	assert.Nil(t, course.PublishedAt)
	assert.Equal(t, models.LevelBeginner, course.Level, "level defaults to beginner")
}

func TestCreateCourseRejectsInvalidLevel(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	user := createTestUser(t, db, "ada", "12345678")

	_, err := svc.CreateCourse(context.Background(), user.ID, CourseInput{
		Name:  "Go from scratch",
		Level: models.CourseLevel("guru"),
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestPublishCourseStampsPublishedAtOnce(t *testing.T) {
	firstPublish := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, db := newCourseService(t, firstPublish)
	user := createTestUser(t, db, "ada", "12345678")
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, user.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)

	course, err = svc.PublishCourse(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CoursePublished, course.Status)
	require.NotNil(t, course.PublishedAt)
	assert.True(t, course.PublishedAt.Equal(firstPublish))

	// Archive then republish later; the original stamp survives.
	_, err = svc.ArchiveCourse(ctx, user.ID, course.ID)
	require.NoError(t, err)

	svc.now = fixedNow(firstPublish.Add(30 * 24 * time.Hour))
	course, err = svc.PublishCourse(ctx, user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, course.PublishedAt)
	assert.True(t, course.PublishedAt.Equal(firstPublish))
}

func TestGetCourseHidesUnpublishedFromNonOwners(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	other := createTestUser(t, db, "grace", "87654321")
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, owner.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)

	// The owner can see their own draft.
	detail, err := svc.GetCourse(ctx, owner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsOwner)

	// Everyone else gets not-found, same as a missing course.
	_, err = svc.GetCourse(ctx, other.ID, course.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	_, err = svc.PublishCourse(ctx, owner.ID, course.ID)
	require.NoError(t, err)

	detail, err = svc.GetCourse(ctx, other.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsOwner)
	assert.Nil(t, detail.Enrollment)
}

func TestGetCourseIncludesCallerEnrollment(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	learner := createTestUser(t, db, "grace", "87654321")
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, owner.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)
	_, err = svc.PublishCourse(ctx, owner.ID, course.ID)
	require.NoError(t, err)

	enrollments := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))
	_, err = enrollments.Enroll(ctx, learner.ID, course.ID)
	require.NoError(t, err)

	detail, err := svc.GetCourse(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Enrollment)
	assert.Equal(t, models.EnrollmentEnrolled, detail.Enrollment.Status)
}

func TestGroupResourcesByTypeOrdering(t *testing.T) {
	resources := []models.CourseResource{
		{Title: "a", ResourceType: models.ResourceTutorial},
		{Title: "b", ResourceType: models.ResourceBook},
		{Title: "c", ResourceType: models.ResourceTutorial},
		{Title: "d", ResourceType: models.ResourceArticle},
	}

	groups := groupResourcesByType(resources)
	require.Len(t, groups, 3)

	// Group order follows first appearance, which is the best resource of each
	// type given pre-sorted input.
	assert.Equal(t, models.ResourceTutorial, groups[0].Type)
	assert.Equal(t, models.ResourceBook, groups[1].Type)
	assert.Equal(t, models.ResourceArticle, groups[2].Type)

	require.Len(t, groups[0].Resources, 2)
	assert.Equal(t, "a", groups[0].Resources[0].Title)
	assert.Equal(t, "c", groups[0].Resources[1].Title)
}

func TestAddResourceStampsAddedBy(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	owner := createTestUser(t, db, "ada", "12345678")
	other := createTestUser(t, db, "grace", "87654321")
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, owner.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)

	resource, err := svc.AddResource(ctx, owner.ID, course.ID, ResourceInput{
		Title:        "A Tour of Go",
		ResourceType: models.ResourceInteractive,
		URL:          "https://go.dev/tour",
	})
	require.NoError(t, err)
	require.NotNil(t, resource.AddedByID)
	assert.Equal(t, owner.ID, *resource.AddedByID)
	assert.Equal(t, models.QualityGood, resource.QualityRating, "quality defaults to good")
	assert.Equal(t, models.DifficultyBeginner, resource.Difficulty, "difficulty defaults to beginner")
	assert.True(t, resource.IsFree, "resources default to free")

	// Non-owners cannot attach resources to the course.
	_, err = svc.AddResource(ctx, other.ID, course.ID, ResourceInput{
		Title:        "Sneaky",
		ResourceType: models.ResourceArticle,
		URL:          "https://example.com",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestAddResourceRejectsInvalidType(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	user := createTestUser(t, db, "ada", "12345678")
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, user.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)

	_, err = svc.AddResource(ctx, user.ID, course.ID, ResourceInput{
		Title:        "Video thing",
		ResourceType: models.ResourceType("video"),
		URL:          "https://example.com",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUpdateResourcePartialEdit(t *testing.T) {
	svc, db := newCourseService(t, time.Now())
	user := createTestUser(t, db, "ada", "12345678")
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, user.ID, CourseInput{Name: "Go from scratch"})
	require.NoError(t, err)
	resource, err := svc.AddResource(ctx, user.ID, course.ID, ResourceInput{
		Title:        "A Tour of Go",
		ResourceType: models.ResourceInteractive,
		URL:          "https://go.dev/tour",
	})
	require.NoError(t, err)

	excellent := models.QualityExcellent
	updated, err := svc.UpdateResource(ctx, user.ID, resource.ID, UpdateResourceInput{
		QualityRating: &excellent,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QualityExcellent, updated.QualityRating)
	assert.Equal(t, "A Tour of Go", updated.Title, "untouched fields survive")
}

func TestListCoursesRejectsInvalidLevelFilter(t *testing.T) {
	svc, _ := newCourseService(t, time.Now())

	_, err := svc.ListCourses(context.Background(), ListCoursesInput{Level: "guru", Limit: 20})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
