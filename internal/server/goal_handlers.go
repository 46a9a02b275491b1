package server

import (
	"time"

	"aptify/internal/models"
	"aptify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListGoals handles GET /api/goals
// @Summary List my goals
// @Description Return the authenticated user's goals with optional status filter and sort
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (not_started, in_progress, completed, cancelled)"
// @Param sort query string false "Sort key (deadline, -deadline, created, -created)"
// @Success 200 {array} models.Goal
// @Failure 400 {object} models.ErrorResponse
// @Router /goals [get]
func (s *Server) ListGoals(c *fiber.Ctx) error {
	goals, err := s.goalService.ListGoals(c.Context(), currentUserID(c),
		c.Query("status"), c.Query("sort"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goals)
}

// goalBody is the JSON shape shared by goal create and update requests.
type goalBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
}

func parseGoalDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// CreateGoal handles POST /api/goals
// @Summary Create goal
// @Description Create a goal owned by the authenticated user
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,description=string,deadline=string,status=string} true "Goal fields"
// @Success 201 {object} models.Goal
// @Failure 400 {object} models.ErrorResponse
// @Router /goals [post]
func (s *Server) CreateGoal(c *fiber.Ctx) error {
	var req goalBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateGoalInput{}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Status != nil {
		in.Status = models.GoalStatus(*req.Status)
	}
	if req.Deadline != nil {
		deadline, err := parseGoalDeadline(*req.Deadline)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid deadline, expected YYYY-MM-DD"))
		}
		in.Deadline = deadline
	}

	goal, err := s.goalService.CreateGoal(c.Context(), currentUserID(c), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// GetGoal handles GET /api/goals/:id
// @Summary Get goal
// @Description Return one of the authenticated user's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} models.Goal
// @Failure 404 {object} models.ErrorResponse
// @Router /goals/{id} [get]
func (s *Server) GetGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	goal, err := s.goalService.GetGoal(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goal)
}

// UpdateGoal handles PUT /api/goals/:id
// @Summary Update goal
// @Description Update one of the authenticated user's goals
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body object{name=string,description=string,deadline=string,status=string} true "Goal fields"
// @Success 200 {object} models.Goal
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /goals/{id} [put]
func (s *Server) UpdateGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req goalBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateGoalInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.GoalStatus(*req.Status)
		in.Status = &status
	}
	if req.Deadline != nil {
		deadline, err := parseGoalDeadline(*req.Deadline)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid deadline, expected YYYY-MM-DD"))
		}
		in.Deadline = &deadline
	}

	goal, err := s.goalService.UpdateGoal(c.Context(), currentUserID(c), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goal)
}

// DeleteGoal handles DELETE /api/goals/:id
// @Summary Delete goal
// @Description Delete one of the authenticated user's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /goals/{id} [delete]
func (s *Server) DeleteGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.goalService.DeleteGoal(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDashboard handles GET /api/dashboard
// @Summary Goal dashboard
// @Description Return goal counts and the most recent goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := s.goalService.GetDashboard(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dashboard)
}
