package service

import (
	"context"
	"time"

	"aptify/internal/models"
	"aptify/internal/repository"
)

// GoalService manages a user's personal goals.
type GoalService struct {
	goalRepo repository.GoalRepository
	now      func() time.Time
}

// NewGoalService returns a new GoalService.
func NewGoalService(goalRepo repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo, now: time.Now}
}

// normalizeGoalSort maps request sort keys onto repository keys. Unknown keys
// pass through unchanged; the repository falls back to the default ordering,
// matching the graceful degradation of the listing UI.
func normalizeGoalSort(sort string) string {
	switch sort {
	case "created":
		return "created_at"
	case "-created":
		return "-created_at"
	}
	return sort
}

// ListGoals returns the caller's goals, filtered and sorted. Goals are never
// visible across users.
func (s *GoalService) ListGoals(ctx context.Context, userID uint, status, sort string) ([]models.Goal, error) {
	filter := repository.GoalFilter{Sort: normalizeGoalSort(sort)}
	if status != "" {
		st := models.GoalStatus(status)
		if !st.Valid() {
			return nil, models.NewValidationError("Invalid status filter")
		}
		filter.Status = st
	}

	goals, err := s.goalRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range goals {
		goals[i].Derive(now)
	}
	return goals, nil
}

// CreateGoalInput carries the fields of a new goal.
type CreateGoalInput struct {
	Name        string
	Description string
	Deadline    time.Time
	Status      models.GoalStatus
}

// CreateGoal creates a goal owned by the caller. The owner is always the
// authenticated user, never caller-supplied data.
func (s *GoalService) CreateGoal(ctx context.Context, userID uint, in CreateGoalInput) (*models.Goal, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Goal name is required")
	}
	if in.Deadline.IsZero() {
		return nil, models.NewValidationError("Deadline is required")
	}

	now := s.now()
	if dateOnly(in.Deadline).Before(dateOnly(now)) {
		return nil, models.NewValidationError("Deadline must be today or later")
	}

	status := in.Status
	if status == "" {
		status = models.GoalNotStarted
	}
	if !status.Valid() {
		return nil, models.NewValidationError("Invalid goal status")
	}

	goal := &models.Goal{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      status,
	}
	if status == models.GoalCompleted {
		completedAt := now
		goal.CompletedAt = &completedAt
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	goal.Derive(now)
	return goal, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetGoal returns one of the caller's goals with derived fields attached.
func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByIDForUser(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	goal.Derive(s.now())
	return goal, nil
}

// UpdateGoalInput carries the editable fields of a goal. Nil fields are left
// untouched.
type UpdateGoalInput struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	Status      *models.GoalStatus
}

// UpdateGoal edits one of the caller's goals. The completion timestamp is
// stamped on the first transition to completed and never overwritten by later
// edits.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID uint, in UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByIDForUser(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Goal name is required")
		}
		goal.Name = *in.Name
	}
	if in.Description != nil {
		goal.Description = *in.Description
	}
	if in.Deadline != nil {
		if in.Deadline.IsZero() {
			return nil, models.NewValidationError("Deadline is required")
		}
		goal.Deadline = *in.Deadline
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, models.NewValidationError("Invalid goal status")
		}
		goal.Status = *in.Status
	}

	if goal.Status == models.GoalCompleted && goal.CompletedAt == nil {
		completedAt := s.now()
		goal.CompletedAt = &completedAt
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	goal.Derive(s.now())
	return goal, nil
}

// DeleteGoal removes one of the caller's goals. Deleting an id that no longer
// exists fails with not-found; the operation is not idempotent.
func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID uint) error {
	return s.goalRepo.DeleteForUser(ctx, userID, goalID)
}

// Dashboard summarizes the caller's goals for the dashboard view.
type Dashboard struct {
	Stats       models.GoalStats `json:"stats"`
	RecentGoals []models.Goal    `json:"recent_goals"`
}

// GetDashboard returns goal counts and the most recent goals.
func (s *GoalService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	stats, err := s.goalRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.goalRepo.RecentByUser(ctx, userID, 3)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range recent {
		recent[i].Derive(now)
	}

	return &Dashboard{Stats: *stats, RecentGoals: recent}, nil
}
