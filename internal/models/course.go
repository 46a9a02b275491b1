package models

import (
	"time"
)

// CourseLevel is the difficulty of a whole course.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
	LevelExpert       CourseLevel = "expert"
)

// Valid reports whether l is one of the known course levels.
func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// CourseStatus is the visibility lifecycle of a course. Only published
// courses are browsable by anyone other than the creator.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// Valid reports whether s is one of the known course statuses.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseDraft, CoursePublished, CourseArchived:
		return true
	}
	return false
}

// Course is a curated learning track created by a user. Creation always
// starts in draft; publishing is an explicit, owner-only transition.
type Course struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	UserID           uint         `gorm:"not null;index" json:"user_id"`
	Name             string       `gorm:"size:255;not null" json:"name"`
	Description      string       `gorm:"type:text" json:"description"`
	Category         string       `gorm:"size:100;index" json:"category"`
	Level            CourseLevel  `gorm:"size:20;not null;default:beginner" json:"level"`
	Status           CourseStatus `gorm:"size:20;not null;default:published;index" json:"status"`
	DurationHours    *int         `json:"duration_hours,omitempty"`
	Prerequisites    string       `gorm:"type:text" json:"prerequisites"`
	LearningOutcomes string       `gorm:"type:text" json:"learning_outcomes"`
	// PublishedAt is stamped on the first draft -> published transition.
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Resources   []CourseResource   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"resources,omitempty"`
	Enrollments []CourseEnrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`

	// ResourceCount is not persisted; computed at query time
	ResourceCount int `gorm:"->" json:"resource_count"`
	// TotalResourceHours is not persisted; computed at query time with
	// missing durations counted as 0
	TotalResourceHours float64 `gorm:"->" json:"total_resource_hours"`
}

// ResourceType is the kind of learning material a course resource points at.
type ResourceType string

const (
	ResourceDocumentation ResourceType = "documentation"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceArticle       ResourceType = "article"
	ResourceInteractive   ResourceType = "interactive"
	ResourceBook          ResourceType = "book"
	ResourceCourse        ResourceType = "course"
	ResourceRepository    ResourceType = "repository"
	ResourcePodcast       ResourceType = "podcast"
	ResourceTool          ResourceType = "tool"
	ResourcePractice      ResourceType = "practice"
)

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceDocumentation, ResourceTutorial, ResourceArticle,
		ResourceInteractive, ResourceBook, ResourceCourse,
		ResourceRepository, ResourcePodcast, ResourceTool, ResourcePractice:
		return true
	}
	return false
}

// QualityRating grades how good a resource is.
type QualityRating string

const (
	QualityExcellent QualityRating = "excellent"
	QualityVeryGood  QualityRating = "very_good"
	QualityGood      QualityRating = "good"
	QualityFair      QualityRating = "fair"
)

// Valid reports whether q is one of the known quality ratings.
func (q QualityRating) Valid() bool {
	switch q {
	case QualityExcellent, QualityVeryGood, QualityGood, QualityFair:
		return true
	}
	return false
}

// Stars maps the rating onto its numeric star value. Ordering by quality uses
// this mapping, not the lexical order of the labels.
func (q QualityRating) Stars() int {
	switch q {
	case QualityExcellent:
		return 5
	case QualityVeryGood:
		return 4
	case QualityGood:
		return 3
	case QualityFair:
		return 2
	}
	return 0
}

// Difficulty grades how hard a single resource is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// CourseResource is a learning material attached to a course. Only users who
// own the parent course can add or mutate resources; AddedByID keeps track of
// who added it and survives that user's deletion as NULL.
type CourseResource struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CourseID      uint          `gorm:"not null;index" json:"course_id"`
	Title         string        `gorm:"size:255;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	ResourceType  ResourceType  `gorm:"size:20;not null" json:"resource_type"`
	URL           string        `gorm:"not null" json:"url"`
	Platform      string        `gorm:"size:100" json:"platform"`
	DurationHours *float64      `json:"duration_hours,omitempty"`
	QualityRating QualityRating `gorm:"size:20;not null;default:good" json:"quality_rating"`
	Difficulty    Difficulty    `gorm:"size:20;not null;default:beginner" json:"difficulty_level"`
	IsFree        bool          `gorm:"not null;default:true" json:"is_free"`
	IsOfficial    bool          `gorm:"not null;default:false" json:"is_official"`
	IsTrending    bool          `gorm:"not null;default:false" json:"is_trending"`
	AddedByID     *uint         `gorm:"index" json:"added_by_id,omitempty"`
	AddedBy       *User         `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ResourceGroup is a set of a course's resources of one type, in the course
// default ordering (quality desc, official desc, newest first).
type ResourceGroup struct {
	Type      ResourceType     `json:"type"`
	Resources []CourseResource `json:"resources"`
}

// CourseDetail is the full view of a course returned to a requesting user.
type CourseDetail struct {
	Course          Course            `json:"course"`
	ResourcesByType []ResourceGroup   `json:"resources_by_type"`
	IsOwner         bool              `json:"is_owner"`
	Enrollment      *CourseEnrollment `json:"enrollment,omitempty"`
}
