package server

import (
	"io"
	"time"

	"aptify/internal/models"
	"aptify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
// @Summary Get my profile
// @Description Return the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Router /profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.identityService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile
// @Summary Update my profile
// @Description Update full name, bio and date of birth
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{full_name=string,bio=string,date_of_birth=string} true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FullName string  `json:"full_name"`
		Bio      *string `json:"bio"`
		DOB      *string `json:"date_of_birth"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateProfileInput{
		FullName: req.FullName,
		Bio:      req.Bio,
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid date of birth, expected YYYY-MM-DD"))
		}
		in.DOB = &dob
	}

	profile, err := s.identityService.UpdateProfile(c.Context(), currentUserID(c), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UploadProfilePhoto handles POST /api/profile/photo
// @Summary Upload profile photo
// @Description Upload and normalize a profile photo (jpeg, png or webp)
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo file"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/photo [post]
func (s *Server) UploadProfilePhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Photo file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	userID := currentUserID(c)
	path, err := s.photoService.Store(service.PhotoUploadInput{
		UserID:      userID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.identityService.SetPhotoPath(c.Context(), userID, path)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetProfilePhoto handles GET /api/profile/photo
// @Summary Get profile photo
// @Description Serve the authenticated user's profile photo
// @Tags profile
// @Produce image/webp
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/photo [get]
func (s *Server) GetProfilePhoto(c *fiber.Ctx) error {
	profile, err := s.identityService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	path, err := s.photoService.ResolvePath(profile.PhotoPath)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.SendFile(path)
}

// ListAchievements handles GET /api/profile/achievements
// @Summary List achievements
// @Description Return the authenticated user's achievements, most recently earned first
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Achievement
// @Router /profile/achievements [get]
func (s *Server) ListAchievements(c *fiber.Ctx) error {
	achievements, err := s.identityService.ListAchievements(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(achievements)
}

// AddAchievement handles POST /api/profile/achievements
// @Summary Add achievement
// @Description Record a new achievement on the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,issued_by=string,date_earned=string,blockchain_hash=string} true "Achievement fields"
// @Success 201 {object} models.Achievement
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /profile/achievements [post]
func (s *Server) AddAchievement(c *fiber.Ctx) error {
	var req struct {
		Title          string  `json:"title"`
		IssuedBy       string  `json:"issued_by"`
		DateEarned     string  `json:"date_earned"`
		BlockchainHash *string `json:"blockchain_hash"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	dateEarned, err := time.Parse("2006-01-02", req.DateEarned)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid date earned, expected YYYY-MM-DD"))
	}

	achievement, err := s.identityService.AddAchievement(c.Context(), currentUserID(c), service.AchievementInput{
		Title:          req.Title,
		IssuedBy:       req.IssuedBy,
		DateEarned:     dateEarned,
		BlockchainHash: req.BlockchainHash,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(achievement)
}
