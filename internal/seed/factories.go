// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"aptify/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded user gets.
const DefaultPassword = "Aptify-Demo-Pass-1!"

var (
	courseCategories = []string{
		"Programming", "Data Science", "Design", "Marketing", "Finance",
		"Cloud", "DevOps", "Security", "Mobile Development", "AI",
	}

	platforms = []string{
		"YouTube", "Coursera", "Udemy", "edX", "Pluralsight",
		"freeCodeCamp", "O'Reilly", "LinkedIn Learning",
	}

	goalNames = []string{
		"Learn Go", "Finish portfolio site", "Pass AWS certification",
		"Read 12 technical books", "Contribute to open source",
		"Build a side project", "Master SQL", "Improve system design skills",
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// randomUserCode builds an 8-digit numeric code. Collisions across a seed run
// are unlikely enough that the unique index is the only guard.
func (f *Factory) randomUserCode() string {
	return fmt.Sprintf("%08d", f.rng.Intn(100000000))
}

// CreateUser constructs and persists a sample user with its profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		UserCode: f.randomUserCode(),
		Role:     models.RoleCandidate,
	}
	for _, override := range overrides {
		override(user)
	}

	profile := &models.Profile{
		FullName: gofakeit.Name(),
		Bio:      gofakeit.Sentence(12),
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// CreateGoal constructs and persists a sample goal for the given user.
func (f *Factory) CreateGoal(user *models.User, overrides ...func(*models.Goal)) (*models.Goal, error) {
	daysOut := f.rng.Intn(120) - 30 // some goals already overdue
	statuses := []models.GoalStatus{
		models.GoalNotStarted, models.GoalInProgress,
		models.GoalCompleted, models.GoalCancelled,
	}

	goal := &models.Goal{
		UserID:      user.ID,
		Name:        goalNames[f.rng.Intn(len(goalNames))],
		Description: gofakeit.Sentence(10),
		Deadline:    time.Now().AddDate(0, 0, daysOut),
		Status:      statuses[f.rng.Intn(len(statuses))],
	}
	if goal.Status == models.GoalCompleted {
		completedAt := time.Now().AddDate(0, 0, -f.rng.Intn(30))
		goal.CompletedAt = &completedAt
	}
	for _, override := range overrides {
		override(goal)
	}

	if err := f.db.Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// CreateCourse constructs and persists a sample course owned by the user.
func (f *Factory) CreateCourse(user *models.User, overrides ...func(*models.Course)) (*models.Course, error) {
	levels := []models.CourseLevel{
		models.LevelBeginner, models.LevelIntermediate,
		models.LevelAdvanced, models.LevelExpert,
	}
	duration := 10 + f.rng.Intn(60)

	course := &models.Course{
		UserID:           user.ID,
		Name:             gofakeit.BookTitle() + " in Practice",
		Description:      gofakeit.Paragraph(1, 3, 8, "\n"),
		Category:         courseCategories[f.rng.Intn(len(courseCategories))],
		Level:            levels[f.rng.Intn(len(levels))],
		Status:           models.CoursePublished,
		DurationHours:    &duration,
		Prerequisites:    gofakeit.Sentence(6),
		LearningOutcomes: gofakeit.Sentence(10),
	}
	if course.Status == models.CoursePublished {
		publishedAt := time.Now().AddDate(0, 0, -f.rng.Intn(90))
		course.PublishedAt = &publishedAt
	}
	for _, override := range overrides {
		override(course)
	}

	if err := f.db.Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

// CreateResource constructs and persists a sample resource on the course.
func (f *Factory) CreateResource(course *models.Course, overrides ...func(*models.CourseResource)) (*models.CourseResource, error) {
	types := []models.ResourceType{
		models.ResourceDocumentation, models.ResourceTutorial, models.ResourceArticle,
		models.ResourceBook, models.ResourceCourse, models.ResourcePractice,
	}
	qualities := []models.QualityRating{
		models.QualityExcellent, models.QualityVeryGood,
		models.QualityGood, models.QualityFair,
	}
	hours := float64(1+f.rng.Intn(10)) / 2

	addedBy := course.UserID
	resource := &models.CourseResource{
		CourseID:      course.ID,
		Title:         gofakeit.Sentence(4),
		Description:   gofakeit.Sentence(12),
		ResourceType:  types[f.rng.Intn(len(types))],
		URL:           gofakeit.URL(),
		Platform:      platforms[f.rng.Intn(len(platforms))],
		DurationHours: &hours,
		QualityRating: qualities[f.rng.Intn(len(qualities))],
		Difficulty:    models.DifficultyBeginner,
		IsFree:        f.rng.Intn(3) > 0,
		IsOfficial:    f.rng.Intn(4) == 0,
		IsTrending:    f.rng.Intn(5) == 0,
		AddedByID:     &addedBy,
	}
	for _, override := range overrides {
		override(resource)
	}

	if err := f.db.Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// CreateEnrollment enrolls the user in the course with randomized progress.
func (f *Factory) CreateEnrollment(user *models.User, course *models.Course, overrides ...func(*models.CourseEnrollment)) (*models.CourseEnrollment, error) {
	progress := f.rng.Intn(101)
	enrollment := &models.CourseEnrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   models.EnrollmentEnrolled,
		Progress: progress,
	}

	now := time.Now()
	switch {
	case progress >= 100:
		enrollment.Status = models.EnrollmentCompleted
		started := now.AddDate(0, 0, -30)
		enrollment.StartedAt = &started
		enrollment.CompletedAt = &now
	case progress > 0:
		enrollment.Status = models.EnrollmentInProgress
		started := now.AddDate(0, 0, -f.rng.Intn(30))
		enrollment.StartedAt = &started
	}
	for _, override := range overrides {
		override(enrollment)
	}

	if err := f.db.Create(enrollment).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}
