package repository

import (
	"context"
	"errors"

	"aptify/internal/models"

	"gorm.io/gorm"
)

// GoalFilter narrows and orders a user's goal listing.
type GoalFilter struct {
	Status models.GoalStatus
	// Sort is a pre-validated key; the service layer maps request input onto
	// the whitelist before it reaches the repository.
	Sort string
}

// GoalRepository defines persistence operations for goals. Every method is
// scoped to the owning user: a goal belonging to someone else behaves exactly
// like a goal that does not exist.
type GoalRepository interface {
	ListByUser(ctx context.Context, userID uint, filter GoalFilter) ([]models.Goal, error)
	GetByIDForUser(ctx context.Context, userID, goalID uint) (*models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Update(ctx context.Context, goal *models.Goal) error
	DeleteForUser(ctx context.Context, userID, goalID uint) error
	StatsByUser(ctx context.Context, userID uint) (*models.GoalStats, error)
	RecentByUser(ctx context.Context, userID uint, limit int) ([]models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository returns a new GoalRepository implementation.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

// goalSortClauses maps whitelisted sort keys to ORDER BY clauses. The default
// ordering is deadline ascending with newer goals first on ties.
var goalSortClauses = map[string]string{
	"deadline":    "deadline ASC, created_at DESC",
	"-deadline":   "deadline DESC, created_at DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

// DefaultGoalSort is the ordering used when no (or an unknown) sort key is given.
const DefaultGoalSort = "deadline"

func (r *goalRepository) ListByUser(ctx context.Context, userID uint, filter GoalFilter) ([]models.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	order, ok := goalSortClauses[filter.Sort]
	if !ok {
		order = goalSortClauses[DefaultGoalSort]
	}

	var goals []models.Goal
	if err := query.Order(order).Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return goals, nil
}

func (r *goalRepository) GetByIDForUser(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Goal", goalID)
		}
		return nil, models.NewInternalError(err)
	}
	return &goal, nil
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) Update(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Save(goal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) DeleteForUser(ctx context.Context, userID, goalID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Absent and foreign-owned are indistinguishable on purpose.
		return models.NewNotFoundError("Goal", goalID)
	}
	return nil
}

func (r *goalRepository) StatsByUser(ctx context.Context, userID uint) (*models.GoalStats, error) {
	stats := &models.GoalStats{}
	base := r.db.WithContext(ctx).Model(&models.Goal{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.GoalCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("status IN ?", []models.GoalStatus{models.GoalNotStarted, models.GoalInProgress}).
		Count(&stats.Active).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

func (r *goalRepository) RecentByUser(ctx context.Context, userID uint, limit int) ([]models.Goal, error) {
	if limit <= 0 {
		limit = 3
	}
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return goals, nil
}
