// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"aptify/internal/models"
	"aptify/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// userCodeMaxAttempts bounds the process-local retry loop for generating a
// unique public code before the collision is surfaced to the caller.
const userCodeMaxAttempts = 5

// IdentityService manages users, profiles and achievements.
type IdentityService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewIdentityService returns a new IdentityService.
func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo, now: time.Now}
}

// RegisterInput carries the fields needed to create a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	FullName string
}

// Register creates a user together with its profile. The profile's full name
// defaults to the username; the 8-digit public code is generated here and
// retried on collision before the database ever sees it.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}

	role := in.Role
	if role == "" {
		role = models.RoleCandidate
	}
	if !role.Valid() {
		return nil, models.NewValidationError("Invalid role")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateKeyError("Email already registered")
	}

	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateKeyError("Username already taken")
	}

	code, err := s.generateUserCode(ctx)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	fullName := in.FullName
	if fullName == "" {
		fullName = in.Username
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
		UserCode: code,
		Role:     role,
	}
	profile := &models.Profile{
		FullName: fullName,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}
	user.Profile = profile

	return user, nil
}

// generateUserCode draws random 8-digit numeric codes until one is free.
func (s *IdentityService) generateUserCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < userCodeMaxAttempts; attempt++ {
		code, err := randomNumericCode(models.UserCodeLength)
		if err != nil {
			return "", models.NewInternalError(err)
		}

		exists, err := s.userRepo.UserCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", models.NewDuplicateKeyError("Could not allocate a unique user code")
}

func randomNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// Authenticate verifies an email/password pair and returns the user.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetProfile returns the caller's profile. A missing profile is an integrity
// violation, not an expected outcome, since profiles are created with users.
func (s *IdentityService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.userRepo.GetProfileByUserID(ctx, userID)
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	FullName string
	Bio      *string
	DOB      *time.Time
}

// UpdateProfile applies the provided fields to the caller's profile.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 1000
	const maxNameLen = 255

	if in.FullName != "" {
		if len(in.FullName) > maxNameLen {
			return nil, models.NewValidationError("Full name too long (max 255 characters)")
		}
		profile.FullName = in.FullName
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 1000 characters)")
		}
		profile.Bio = *in.Bio
	}
	if in.DOB != nil {
		profile.DOB = in.DOB
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AchievementInput carries the fields of a new achievement.
type AchievementInput struct {
	Title          string
	IssuedBy       string
	DateEarned     time.Time
	BlockchainHash *string
}

// AddAchievement appends an achievement to the caller's profile. Achievements
// are append-only; there is no update or delete.
func (s *IdentityService) AddAchievement(ctx context.Context, userID uint, in AchievementInput) (*models.Achievement, error) {
	if in.Title == "" || in.IssuedBy == "" {
		return nil, models.NewValidationError("Title and issuing body are required")
	}
	if in.DateEarned.IsZero() {
		return nil, models.NewValidationError("Date earned is required")
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	achievement := &models.Achievement{
		ProfileID:      profile.ID,
		Title:          in.Title,
		IssuedBy:       in.IssuedBy,
		DateEarned:     in.DateEarned,
		BlockchainHash: in.BlockchainHash,
	}
	if err := s.userRepo.CreateAchievement(ctx, achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

// ListAchievements returns the caller's achievements, most recently earned first.
func (s *IdentityService) ListAchievements(ctx context.Context, userID uint) ([]models.Achievement, error) {
	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListAchievements(ctx, profile.ID)
}

// SetPhotoPath records the stored photo reference on the caller's profile.
func (s *IdentityService) SetPhotoPath(ctx context.Context, userID uint, path string) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.PhotoPath = path
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
