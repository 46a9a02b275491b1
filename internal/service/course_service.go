package service

import (
	"context"
	"time"

	"aptify/internal/models"
	"aptify/internal/repository"
)

// CourseService manages the course catalog and its resources.
type CourseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	now            func() time.Time
}

// NewCourseService returns a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, enrollmentRepo repository.EnrollmentRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo, now: time.Now}
}

// ListCoursesInput narrows the public catalog listing.
type ListCoursesInput struct {
	Category string
	Level    string
	Sort     string
	Limit    int
	Offset   int
}

// ListCourses returns published courses only, for every caller. Draft and
// archived courses never appear here.
func (s *CourseService) ListCourses(ctx context.Context, in ListCoursesInput) ([]models.Course, error) {
	filter := repository.CourseFilter{Category: in.Category, Sort: in.Sort}
	if in.Level != "" {
		level := models.CourseLevel(in.Level)
		if !level.Valid() {
			return nil, models.NewValidationError("Invalid level filter")
		}
		filter.Level = level
	}
	return s.courseRepo.ListPublished(ctx, filter, in.Limit, in.Offset)
}

// CourseInput carries the creator-editable course fields. Status is absent on
// purpose: creation always produces a draft and lifecycle changes go through
// Publish/Archive.
type CourseInput struct {
	Name             string
	Description      string
	Category         string
	Level            models.CourseLevel
	DurationHours    *int
	Prerequisites    string
	LearningOutcomes string
}

// CreateCourse creates a course owned by the caller, always in draft.
func (s *CourseService) CreateCourse(ctx context.Context, userID uint, in CourseInput) (*models.Course, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Course name is required")
	}

	level := in.Level
	if level == "" {
		level = models.LevelBeginner
	}
	if !level.Valid() {
		return nil, models.NewValidationError("Invalid course level")
	}

	course := &models.Course{
		UserID:           userID,
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		Level:            level,
		Status:           models.CourseDraft,
		DurationHours:    in.DurationHours,
		Prerequisites:    in.Prerequisites,
		LearningOutcomes: in.LearningOutcomes,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourse returns the full course view. Non-owners only ever see published
// courses; an unpublished course is not-found to them, indistinguishable from
// a course that does not exist.
func (s *CourseService) GetCourse(ctx context.Context, userID, courseID uint) (*models.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	isOwner := course.UserID == userID
	if course.Status != models.CoursePublished && !isOwner {
		return nil, models.NewNotFoundError("Course", courseID)
	}

	resources, err := s.courseRepo.ListResources(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	return &models.CourseDetail{
		Course:          *course,
		ResourcesByType: groupResourcesByType(resources),
		IsOwner:         isOwner,
		Enrollment:      enrollment,
	}, nil
}

// groupResourcesByType buckets resources by type. Groups appear in order of
// their best resource and each group keeps the incoming ordering (quality
// desc, official desc, newest first).
func groupResourcesByType(resources []models.CourseResource) []models.ResourceGroup {
	var groups []models.ResourceGroup
	index := make(map[models.ResourceType]int)

	for _, resource := range resources {
		i, ok := index[resource.ResourceType]
		if !ok {
			i = len(groups)
			index[resource.ResourceType] = i
			groups = append(groups, models.ResourceGroup{Type: resource.ResourceType})
		}
		groups[i].Resources = append(groups[i].Resources, resource)
	}
	return groups
}

// UpdateCourseInput carries the editable course fields. Nil fields are left
// untouched.
type UpdateCourseInput struct {
	Name             *string
	Description      *string
	Category         *string
	Level            *models.CourseLevel
	DurationHours    *int
	Prerequisites    *string
	LearningOutcomes *string
}

// UpdateCourse edits a course the caller owns.
func (s *CourseService) UpdateCourse(ctx context.Context, userID, courseID uint, in UpdateCourseInput) (*models.Course, error) {
	course, err := s.courseRepo.GetByIDForOwner(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Course name is required")
		}
		course.Name = *in.Name
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Category != nil {
		course.Category = *in.Category
	}
	if in.Level != nil {
		if !in.Level.Valid() {
			return nil, models.NewValidationError("Invalid course level")
		}
		course.Level = *in.Level
	}
	if in.DurationHours != nil {
		course.DurationHours = in.DurationHours
	}
	if in.Prerequisites != nil {
		course.Prerequisites = *in.Prerequisites
	}
	if in.LearningOutcomes != nil {
		course.LearningOutcomes = *in.LearningOutcomes
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// PublishCourse moves a draft (or archived) course the caller owns into the
// published state, making it browsable and enrollable for everyone. The
// publication timestamp is stamped on the first publish only.
func (s *CourseService) PublishCourse(ctx context.Context, userID, courseID uint) (*models.Course, error) {
	course, err := s.courseRepo.GetByIDForOwner(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	course.Status = models.CoursePublished
	if course.PublishedAt == nil {
		publishedAt := s.now()
		course.PublishedAt = &publishedAt
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ArchiveCourse retires a course the caller owns from the catalog.
func (s *CourseService) ArchiveCourse(ctx context.Context, userID, courseID uint) (*models.Course, error) {
	course, err := s.courseRepo.GetByIDForOwner(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	course.Status = models.CourseArchived

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course the caller owns, cascading its resources and
// enrollments.
func (s *CourseService) DeleteCourse(ctx context.Context, userID, courseID uint) error {
	return s.courseRepo.DeleteForOwner(ctx, userID, courseID)
}

// ListMyCourses returns every course the caller created, in any status.
func (s *CourseService) ListMyCourses(ctx context.Context, userID uint) ([]models.Course, error) {
	return s.courseRepo.ListByOwner(ctx, userID)
}

// ResourceInput carries the fields of a course resource.
type ResourceInput struct {
	Title         string
	Description   string
	ResourceType  models.ResourceType
	URL           string
	Platform      string
	DurationHours *float64
	QualityRating models.QualityRating
	Difficulty    models.Difficulty
	IsFree        *bool
	IsOfficial    bool
	IsTrending    bool
}

// AddResource attaches a resource to a course the caller owns. The adding
// user is stamped from the authenticated identity.
func (s *CourseService) AddResource(ctx context.Context, userID, courseID uint, in ResourceInput) (*models.CourseResource, error) {
	if _, err := s.courseRepo.GetByIDForOwner(ctx, userID, courseID); err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Resource title is required")
	}
	if in.URL == "" {
		return nil, models.NewValidationError("Resource URL is required")
	}
	if !in.ResourceType.Valid() {
		return nil, models.NewValidationError("Invalid resource type")
	}

	quality := in.QualityRating
	if quality == "" {
		quality = models.QualityGood
	}
	if !quality.Valid() {
		return nil, models.NewValidationError("Invalid quality rating")
	}

	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}
	if !difficulty.Valid() {
		return nil, models.NewValidationError("Invalid difficulty level")
	}

	isFree := true
	if in.IsFree != nil {
		isFree = *in.IsFree
	}

	addedBy := userID
	resource := &models.CourseResource{
		CourseID:      courseID,
		Title:         in.Title,
		Description:   in.Description,
		ResourceType:  in.ResourceType,
		URL:           in.URL,
		Platform:      in.Platform,
		DurationHours: in.DurationHours,
		QualityRating: quality,
		Difficulty:    difficulty,
		IsFree:        isFree,
		IsOfficial:    in.IsOfficial,
		IsTrending:    in.IsTrending,
		AddedByID:     &addedBy,
	}
	if err := s.courseRepo.CreateResource(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// UpdateResourceInput carries the editable resource fields. Nil fields are
// left untouched.
type UpdateResourceInput struct {
	Title         *string
	Description   *string
	ResourceType  *models.ResourceType
	URL           *string
	Platform      *string
	DurationHours *float64
	QualityRating *models.QualityRating
	Difficulty    *models.Difficulty
	IsFree        *bool
	IsOfficial    *bool
	IsTrending    *bool
}

// UpdateResource edits a resource whose parent course the caller owns.
func (s *CourseService) UpdateResource(ctx context.Context, userID, resourceID uint, in UpdateResourceInput) (*models.CourseResource, error) {
	resource, err := s.courseRepo.GetResourceForOwner(ctx, userID, resourceID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Resource title is required")
		}
		resource.Title = *in.Title
	}
	if in.Description != nil {
		resource.Description = *in.Description
	}
	if in.ResourceType != nil {
		if !in.ResourceType.Valid() {
			return nil, models.NewValidationError("Invalid resource type")
		}
		resource.ResourceType = *in.ResourceType
	}
	if in.URL != nil {
		if *in.URL == "" {
			return nil, models.NewValidationError("Resource URL is required")
		}
		resource.URL = *in.URL
	}
	if in.Platform != nil {
		resource.Platform = *in.Platform
	}
	if in.DurationHours != nil {
		resource.DurationHours = in.DurationHours
	}
	if in.QualityRating != nil {
		if !in.QualityRating.Valid() {
			return nil, models.NewValidationError("Invalid quality rating")
		}
		resource.QualityRating = *in.QualityRating
	}
	if in.Difficulty != nil {
		if !in.Difficulty.Valid() {
			return nil, models.NewValidationError("Invalid difficulty level")
		}
		resource.Difficulty = *in.Difficulty
	}
	if in.IsFree != nil {
		resource.IsFree = *in.IsFree
	}
	if in.IsOfficial != nil {
		resource.IsOfficial = *in.IsOfficial
	}
	if in.IsTrending != nil {
		resource.IsTrending = *in.IsTrending
	}

	if err := s.courseRepo.UpdateResource(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// DeleteResource removes a resource whose parent course the caller owns.
func (s *CourseService) DeleteResource(ctx context.Context, userID, resourceID uint) error {
	return s.courseRepo.DeleteResourceForOwner(ctx, userID, resourceID)
}
