// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role classifies what a user is on the platform.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// UserCodeLength is the length of the public-facing numeric user code.
const UserCodeLength = 8

// User is the identity root. The numeric ID stays internal; UserCode is the
// public-facing identifier shown in place of the primary key.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	// UserCode is generated once at creation and never changes.
	UserCode   string    `gorm:"size:8;unique;not null;index" json:"user_code"`
	Role       Role      `gorm:"size:20;not null;default:candidate" json:"role"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	// ConsentAt records when the user gave explicit consent; stamped at
	// creation and immutable thereafter.
	ConsentAt time.Time `gorm:"autoCreateTime" json:"consent_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}
