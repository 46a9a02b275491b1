package seed

import (
	"fmt"
	"log"

	"aptify/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers   int
	NumCourses int
}

// Seeder orchestrates demo data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded domain data, children before parents.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.CourseEnrollment{},
		&models.CourseResource{},
		&models.Course{},
		&models.Goal{},
		&models.Achievement{},
		&models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// Run seeds a realistic demo mesh: users with profiles and goals, a course
// catalog with resources, and cross-enrollments between users.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumCourses <= 0 {
		opts.NumCourses = 20
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)

		goalCount := 2 + s.factory.rng.Intn(4)
		for g := 0; g < goalCount; g++ {
			if _, err := s.factory.CreateGoal(user); err != nil {
				return fmt.Errorf("seed goal: %w", err)
			}
		}
	}
	log.Printf("seeded %d users (password for all: %s)", len(users), DefaultPassword)

	courses := make([]*models.Course, 0, opts.NumCourses)
	for i := 0; i < opts.NumCourses; i++ {
		owner := users[s.factory.rng.Intn(len(users))]
		course, err := s.factory.CreateCourse(owner)
		if err != nil {
			return fmt.Errorf("seed course: %w", err)
		}
		courses = append(courses, course)

		resourceCount := 1 + s.factory.rng.Intn(6)
		for r := 0; r < resourceCount; r++ {
			if _, err := s.factory.CreateResource(course); err != nil {
				return fmt.Errorf("seed resource: %w", err)
			}
		}
	}
	log.Printf("seeded %d courses", len(courses))

	enrolled := 0
	for _, user := range users {
		courseCount := s.factory.rng.Intn(4)
		seen := make(map[uint]bool)
		for e := 0; e < courseCount; e++ {
			course := courses[s.factory.rng.Intn(len(courses))]
			if course.UserID == user.ID || seen[course.ID] {
				continue
			}
			seen[course.ID] = true
			if _, err := s.factory.CreateEnrollment(user, course); err != nil {
				return fmt.Errorf("seed enrollment: %w", err)
			}
			enrolled++
		}
	}
	log.Printf("seeded %d enrollments", enrolled)

	return nil
}
