package server

import (
	"aptify/internal/models"
	"aptify/internal/service"
	"aptify/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListCourses handles GET /api/courses
// @Summary Browse published courses
// @Description Return published courses with optional category/level filters and sort
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param category query string false "Case-insensitive category substring"
// @Param level query string false "Filter by level (beginner, intermediate, advanced, expert)"
// @Param sort query string false "Sort key (-created_at, name, level, -updated_at)"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Course
// @Failure 400 {object} models.ErrorResponse
// @Router /courses [get]
func (s *Server) ListCourses(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	courses, err := s.courseService.ListCourses(c.Context(), service.ListCoursesInput{
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Sort:     c.Query("sort"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(courses)
}

// courseBody is the JSON shape shared by course create and update requests.
type courseBody struct {
	Name             *string `json:"name" validate:"omitempty,max=255"`
	Description      *string `json:"description" validate:"omitempty,max=5000"`
	Category         *string `json:"category" validate:"omitempty,max=100"`
	Level            *string `json:"level"`
	DurationHours    *int    `json:"duration_hours" validate:"omitempty,gte=0"`
	Prerequisites    *string `json:"prerequisites" validate:"omitempty,max=5000"`
	LearningOutcomes *string `json:"learning_outcomes" validate:"omitempty,max=5000"`
}

// CreateCourse handles POST /api/courses
// @Summary Create course
// @Description Create a draft course owned by the authenticated user
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,description=string,category=string,level=string,duration_hours=int,prerequisites=string,learning_outcomes=string} true "Course fields"
// @Success 201 {object} models.Course
// @Failure 400 {object} models.ErrorResponse
// @Router /courses [post]
func (s *Server) CreateCourse(c *fiber.Ctx) error {
	var req courseBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	in := service.CourseInput{DurationHours: req.DurationHours}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Level != nil {
		in.Level = models.CourseLevel(*req.Level)
	}
	if req.Prerequisites != nil {
		in.Prerequisites = *req.Prerequisites
	}
	if req.LearningOutcomes != nil {
		in.LearningOutcomes = *req.LearningOutcomes
	}

	course, err := s.courseService.CreateCourse(c.Context(), currentUserID(c), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// ListMyCourses handles GET /api/courses/mine
// @Summary List my courses
// @Description Return every course created by the authenticated user, in any status
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course
// @Router /courses/mine [get]
func (s *Server) ListMyCourses(c *fiber.Ctx) error {
	courses, err := s.courseService.ListMyCourses(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(courses)
}

// GetCourse handles GET /api/courses/:id
// @Summary Get course detail
// @Description Return a course with its resources grouped by type; unpublished courses are visible to their owner only
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /courses/{id} [get]
func (s *Server) GetCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.courseService.GetCourse(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// UpdateCourse handles PUT /api/courses/:id
// @Summary Update course
// @Description Update a course the authenticated user owns
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body object{name=string,description=string,category=string,level=string,duration_hours=int,prerequisites=string,learning_outcomes=string} true "Course fields"
// @Success 200 {object} models.Course
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /courses/{id} [put]
func (s *Server) UpdateCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req courseBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	in := service.UpdateCourseInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		DurationHours:    req.DurationHours,
		Prerequisites:    req.Prerequisites,
		LearningOutcomes: req.LearningOutcomes,
	}
	if req.Level != nil {
		level := models.CourseLevel(*req.Level)
		in.Level = &level
	}

	course, err := s.courseService.UpdateCourse(c.Context(), currentUserID(c), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(course)
}

// DeleteCourse handles DELETE /api/courses/:id
// @Summary Delete course
// @Description Delete a course the authenticated user owns, cascading resources and enrollments
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /courses/{id} [delete]
func (s *Server) DeleteCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.courseService.DeleteCourse(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublishCourse handles POST /api/courses/:id/publish
// @Summary Publish course
// @Description Make a course the authenticated user owns visible and enrollable
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} models.ErrorResponse
// @Router /courses/{id}/publish [post]
func (s *Server) PublishCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	course, err := s.courseService.PublishCourse(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(course)
}

// ArchiveCourse handles POST /api/courses/:id/archive
// @Summary Archive course
// @Description Retire a course the authenticated user owns from the catalog
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} models.ErrorResponse
// @Router /courses/{id}/archive [post]
func (s *Server) ArchiveCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	course, err := s.courseService.ArchiveCourse(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(course)
}

// resourceBody is the JSON shape shared by resource create and update requests.
type resourceBody struct {
	Title         *string  `json:"title" validate:"omitempty,max=255"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	ResourceType  *string  `json:"resource_type"`
	URL           *string  `json:"url" validate:"omitempty,url"`
	Platform      *string  `json:"platform" validate:"omitempty,max=100"`
	DurationHours *float64 `json:"duration_hours" validate:"omitempty,gte=0"`
	QualityRating *string  `json:"quality_rating"`
	Difficulty    *string  `json:"difficulty"`
	IsFree        *bool    `json:"is_free"`
	IsOfficial    *bool    `json:"is_official"`
	IsTrending    *bool    `json:"is_trending"`
}

// AddResource handles POST /api/courses/:id/resources
// @Summary Add course resource
// @Description Attach a learning resource to a course the authenticated user owns
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body object{title=string,description=string,resource_type=string,url=string,platform=string,duration_hours=number,quality_rating=string,difficulty=string,is_free=bool,is_official=bool,is_trending=bool} true "Resource fields"
// @Success 201 {object} models.CourseResource
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /courses/{id}/resources [post]
func (s *Server) AddResource(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req resourceBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	in := service.ResourceInput{
		DurationHours: req.DurationHours,
		IsFree:        req.IsFree,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.ResourceType != nil {
		in.ResourceType = models.ResourceType(*req.ResourceType)
	}
	if req.URL != nil {
		in.URL = *req.URL
	}
	if req.Platform != nil {
		in.Platform = *req.Platform
	}
	if req.QualityRating != nil {
		in.QualityRating = models.QualityRating(*req.QualityRating)
	}
	if req.Difficulty != nil {
		in.Difficulty = models.Difficulty(*req.Difficulty)
	}
	if req.IsOfficial != nil {
		in.IsOfficial = *req.IsOfficial
	}
	if req.IsTrending != nil {
		in.IsTrending = *req.IsTrending
	}

	resource, err := s.courseService.AddResource(c.Context(), currentUserID(c), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

// UpdateResource handles PUT /api/resources/:id
// @Summary Update course resource
// @Description Update a resource whose parent course the authenticated user owns
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body object{title=string,description=string,resource_type=string,url=string,platform=string,duration_hours=number,quality_rating=string,difficulty=string,is_free=bool,is_official=bool,is_trending=bool} true "Resource fields"
// @Success 200 {object} models.CourseResource
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /resources/{id} [put]
func (s *Server) UpdateResource(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req resourceBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	in := service.UpdateResourceInput{
		Title:         req.Title,
		Description:   req.Description,
		URL:           req.URL,
		Platform:      req.Platform,
		DurationHours: req.DurationHours,
		IsFree:        req.IsFree,
		IsOfficial:    req.IsOfficial,
		IsTrending:    req.IsTrending,
	}
	if req.ResourceType != nil {
		rt := models.ResourceType(*req.ResourceType)
		in.ResourceType = &rt
	}
	if req.QualityRating != nil {
		q := models.QualityRating(*req.QualityRating)
		in.QualityRating = &q
	}
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		in.Difficulty = &d
	}

	resource, err := s.courseService.UpdateResource(c.Context(), currentUserID(c), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resource)
}

// DeleteResource handles DELETE /api/resources/:id
// @Summary Delete course resource
// @Description Delete a resource whose parent course the authenticated user owns
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /resources/{id} [delete]
func (s *Server) DeleteResource(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.courseService.DeleteResource(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
