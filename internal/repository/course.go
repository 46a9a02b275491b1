package repository

import (
	"context"
	"errors"

	"aptify/internal/models"

	"gorm.io/gorm"
)

// CourseFilter narrows and orders the public course listing.
type CourseFilter struct {
	Category string
	Level    models.CourseLevel
	Sort     string
}

// CourseRepository defines persistence operations for courses and their
// resources. Mutations are scoped to the owning creator; reads of unpublished
// courses by non-owners surface as not-found.
type CourseRepository interface {
	ListPublished(ctx context.Context, filter CourseFilter, limit, offset int) ([]models.Course, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.Course, error)
	GetByID(ctx context.Context, courseID uint) (*models.Course, error)
	GetByIDForOwner(ctx context.Context, userID, courseID uint) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	DeleteForOwner(ctx context.Context, userID, courseID uint) error
	CountByOwner(ctx context.Context, userID uint) (int64, error)

	ListResources(ctx context.Context, courseID uint) ([]models.CourseResource, error)
	CreateResource(ctx context.Context, resource *models.CourseResource) error
	GetResourceForOwner(ctx context.Context, userID, resourceID uint) (*models.CourseResource, error)
	UpdateResource(ctx context.Context, resource *models.CourseResource) error
	DeleteResourceForOwner(ctx context.Context, userID, resourceID uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository returns a new CourseRepository implementation.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// courseAggregates attaches the derived columns to every course row. Missing
// resource durations count as zero.
const courseAggregates = `courses.*,
(SELECT COUNT(*) FROM course_resources cr WHERE cr.course_id = courses.id) AS resource_count,
(SELECT COALESCE(SUM(COALESCE(cr.duration_hours, 0)), 0) FROM course_resources cr WHERE cr.course_id = courses.id) AS total_resource_hours`

// levelRank orders course levels from beginner to expert for the "level" sort.
const levelRank = `CASE level WHEN 'beginner' THEN 1 WHEN 'intermediate' THEN 2 WHEN 'advanced' THEN 3 WHEN 'expert' THEN 4 ELSE 5 END`

// courseSortClauses maps whitelisted sort keys to ORDER BY clauses.
var courseSortClauses = map[string]string{
	"-created_at": "created_at DESC",
	"name":        "name ASC",
	"level":       levelRank + " ASC, created_at DESC",
	"-updated_at": "updated_at DESC",
}

// DefaultCourseSort is the ordering used when no (or an unknown) sort key is given.
const DefaultCourseSort = "-created_at"

// resourceOrder is the course default ordering for resources: quality stars
// descending, official resources first within a star band, newest first.
const resourceOrder = `CASE quality_rating WHEN 'excellent' THEN 5 WHEN 'very_good' THEN 4 WHEN 'good' THEN 3 WHEN 'fair' THEN 2 ELSE 0 END DESC, is_official DESC, created_at DESC`

func (r *courseRepository) ListPublished(ctx context.Context, filter CourseFilter, limit, offset int) ([]models.Course, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Select(courseAggregates).
		Where("status = ?", models.CoursePublished)

	if filter.Category != "" {
		query = query.Where("LOWER(category) LIKE LOWER(?)", "%"+filter.Category+"%")
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}

	order, ok := courseSortClauses[filter.Sort]
	if !ok {
		order = courseSortClauses[DefaultCourseSort]
	}

	var courses []models.Course
	if err := query.Order(order).Limit(limit).Offset(offset).Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Select(courseAggregates).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Select(courseAggregates).
		Where("courses.id = ?", courseID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Course", courseID)
		}
		return nil, models.NewInternalError(err)
	}
	return &course, nil
}

func (r *courseRepository) GetByIDForOwner(ctx context.Context, userID, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Select(courseAggregates).
		Where("courses.id = ? AND courses.user_id = ?", courseID, userID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Course", courseID)
		}
		return nil, models.NewInternalError(err)
	}
	return &course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) DeleteForOwner(ctx context.Context, userID, courseID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", courseID, userID).
		Delete(&models.Course{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Course", courseID)
	}
	return nil
}

func (r *courseRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *courseRepository) ListResources(ctx context.Context, courseID uint) ([]models.CourseResource, error) {
	var resources []models.CourseResource
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order(resourceOrder).
		Find(&resources).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return resources, nil
}

func (r *courseRepository) CreateResource(ctx context.Context, resource *models.CourseResource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetResourceForOwner loads a resource only when the caller owns the parent
// course; everything else is not-found.
func (r *courseRepository) GetResourceForOwner(ctx context.Context, userID, resourceID uint) (*models.CourseResource, error) {
	var resource models.CourseResource
	if err := r.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = course_resources.course_id").
		Where("course_resources.id = ? AND courses.user_id = ?", resourceID, userID).
		First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Resource", resourceID)
		}
		return nil, models.NewInternalError(err)
	}
	return &resource, nil
}

func (r *courseRepository) UpdateResource(ctx context.Context, resource *models.CourseResource) error {
	if err := r.db.WithContext(ctx).Save(resource).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) DeleteResourceForOwner(ctx context.Context, userID, resourceID uint) error {
	// Resolve through the ownership join first; a blind DELETE with a join is
	// not portable across postgres and sqlite.
	resource, err := r.GetResourceForOwner(ctx, userID, resourceID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.CourseResource{}, resource.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
