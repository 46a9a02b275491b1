package seed

import (
	"testing"

	"aptify/internal/models"

	"github.com/stretchr/testify/assert"
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

func TestFactoryCreateUser(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Len(t, user.UserCode, models.UserCodeLength)
	require.NotNil(t, user.Profile)
	assert.Equal(t, user.ID, user.Profile.UserID)

	// Overrides apply before persistence.
	fixed, err := factory.CreateUser(func(u *models.User) {
		u.Username = "fixed-name"
		u.Email = "fixed@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-name", fixed.Username)
}

func TestFactoryCreateGoalCompletedHasStamp(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)

	goal, err := factory.CreateGoal(user, func(g *models.Goal) {
		g.Status = models.GoalNotStarted
		g.CompletedAt = nil
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, goal.UserID)
	assert.True(t, goal.Status.Valid())
}

func TestFactoryCreateCourseWithResources(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)

	course, err := factory.CreateCourse(user)
	require.NoError(t, err)
	assert.Equal(t, models.CoursePublished, course.Status)
	require.NotNil(t, course.PublishedAt)

	resource, err := factory.CreateResource(course)
	require.NoError(t, err)
	assert.Equal(t, course.ID, resource.CourseID)
	assert.True(t, resource.ResourceType.Valid())
	assert.True(t, resource.QualityRating.Valid())
	require.NotNil(t, resource.AddedByID)
	assert.Equal(t, user.ID, *resource.AddedByID)
}

func TestFactoryCreateEnrollmentStatusMatchesProgress(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db)

	owner, err := factory.CreateUser()
	require.NoError(t, err)
	learner, err := factory.CreateUser()
	require.NoError(t, err)
	course, err := factory.CreateCourse(owner)
	require.NoError(t, err)

	enrollment, err := factory.CreateEnrollment(learner, course)
	require.NoError(t, err)

	switch {
	case enrollment.Progress >= 100:
		assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
		assert.NotNil(t, enrollment.CompletedAt)
	case enrollment.Progress > 0:
		assert.Equal(t, models.EnrollmentInProgress, enrollment.Status)
		assert.NotNil(t, enrollment.StartedAt)
	default:
		assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	}
}

func TestSeederRunAndClear(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(Options{NumUsers: 3, NumCourses: 4}))

	var userCount, courseCount, goalCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Course{}).Count(&courseCount)
	db.Model(&models.Goal{}).Count(&goalCount)
	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(4), courseCount)
	assert.GreaterOrEqual(t, goalCount, int64(6), "every user gets at least two goals")

	require.NoError(t, seeder.ClearAll())
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Course{}).Count(&courseCount)
	assert.Zero(t, userCount)
	assert.Zero(t, courseCount)
}
