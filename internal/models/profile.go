package models

import (
	"time"
)

// Profile stores the personal details behind a User. Exactly one profile
// exists per user; it is created in the same transaction as the user and
// removed with it.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	// FullName defaults to the username when not supplied at registration.
	FullName  string     `gorm:"size:255;not null" json:"full_name"`
	DOB       *time.Time `json:"dob,omitempty"`
	PhotoPath string     `json:"photo_path,omitempty"`
	Bio       string     `gorm:"type:text" json:"bio"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Achievements []Achievement `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
}

// Achievement is an append-only credential attached to a profile. The
// blockchain hash, when present, links to an externally verified record and
// must be globally unique.
type Achievement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProfileID      uint      `gorm:"not null;index" json:"profile_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	IssuedBy       string    `gorm:"size:255;not null" json:"issued_by"`
	DateEarned     time.Time `json:"date_earned"`
	BlockchainHash *string   `gorm:"size:64;uniqueIndex" json:"blockchain_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
