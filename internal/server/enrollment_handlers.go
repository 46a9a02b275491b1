package server

import (
	"aptify/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Enroll handles POST /api/courses/:id/enroll
// @Summary Enroll in course
// @Description Enroll the authenticated user in a published course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} models.CourseEnrollment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (s *Server) Enroll(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	enrollment, err := s.enrollmentService.Enroll(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

// ListEnrollments handles GET /api/enrollments
// @Summary List my enrollments
// @Description Return the authenticated user's enrollments with course details, most recent first
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CourseEnrollment
// @Router /enrollments [get]
func (s *Server) ListEnrollments(c *fiber.Ctx) error {
	enrollments, err := s.enrollmentService.ListEnrollments(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(enrollments)
}

// GetEnrollmentStats handles GET /api/enrollments/stats
// @Summary Enrollment stats
// @Description Return enrollment counts for the authenticated user
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.EnrollmentStats
// @Router /enrollments/stats [get]
func (s *Server) GetEnrollmentStats(c *fiber.Ctx) error {
	stats, err := s.enrollmentService.GetEnrollmentStats(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// UpdateProgress handles PUT /api/enrollments/:courseId/progress
// @Summary Update enrollment progress
// @Description Record progress (0-100) on one of the authenticated user's enrollments
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body object{progress=int,resources_completed=int} true "Progress fields"
// @Success 200 {object} models.CourseEnrollment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /enrollments/{courseId}/progress [put]
func (s *Server) UpdateProgress(c *fiber.Ctx) error {
	courseID, err := s.parseID(c, "courseId")
	if err != nil {
		return nil
	}

	var req struct {
		Progress           *int `json:"progress"`
		ResourcesCompleted *int `json:"resources_completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Progress == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Progress is required"))
	}

	enrollment, err := s.enrollmentService.UpdateProgress(c.Context(), currentUserID(c),
		courseID, *req.Progress, req.ResourcesCompleted)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(enrollment)
}
