package models

import (
	"time"
)

// GoalStatus is the lifecycle state of a personal goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalCancelled  GoalStatus = "cancelled"
)

// Valid reports whether s is one of the known goal statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalNotStarted, GoalInProgress, GoalCompleted, GoalCancelled:
		return true
	}
	return false
}

// Goal is a personal target owned by exactly one user. Only the owner can
// ever see or mutate it.
type Goal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    time.Time  `gorm:"not null" json:"deadline"`
	Status      GoalStatus `gorm:"size:20;not null;default:not_started" json:"status"`
	// CompletedAt is stamped the first time the goal transitions to
	// completed and is never overwritten afterwards.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Derived fields, recomputed on every read; never persisted.
	IsOverdue     bool `gorm:"-" json:"is_overdue"`
	DaysRemaining int  `gorm:"-" json:"days_remaining"`
}

// Derive recomputes the scheduling fields relative to now. A goal is overdue
// when its deadline has passed and it was never completed; days remaining
// never goes negative.
func (g *Goal) Derive(now time.Time) {
	today := truncateToDay(now)
	deadline := truncateToDay(g.Deadline)

	g.IsOverdue = deadline.Before(today) && g.Status != GoalCompleted

	days := int(deadline.Sub(today).Hours() / 24)
	if days < 0 {
		days = 0
	}
	g.DaysRemaining = days
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GoalStats summarizes a user's goals for the dashboard.
type GoalStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
}
