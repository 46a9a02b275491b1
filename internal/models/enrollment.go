package models

import (
	"time"
)

// EnrollmentStatus is the progress state of a user inside a course.
type EnrollmentStatus string

const (
	EnrollmentEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
	EnrollmentAbandoned  EnrollmentStatus = "abandoned"
)

// Valid reports whether s is one of the known enrollment statuses.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentEnrolled, EnrollmentInProgress, EnrollmentCompleted, EnrollmentAbandoned:
		return true
	}
	return false
}

// CourseEnrollment tracks one user's progress against one course. The
// (user, course) pair is unique; the database constraint is the authority
// under concurrent enrollment attempts.
type CourseEnrollment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"course_id"`

	Status             EnrollmentStatus `gorm:"size:20;not null;default:enrolled" json:"status"`
	Progress           int              `gorm:"not null;default:0" json:"progress"`
	ResourcesCompleted int              `gorm:"not null;default:0" json:"resources_completed"`

	EnrolledAt  time.Time  `gorm:"autoCreateTime" json:"enrolled_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// EnrollmentStats summarizes a user's enrollments.
type EnrollmentStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
}
