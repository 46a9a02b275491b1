package server

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLifecycle(t *testing.T) {
	app, _ := setupTestServer(t)
	token := signupUser(t, app, "ada")

	deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	resp := doJSON(t, app, fiber.MethodPost, "/api/goals/", token, fiber.Map{
		"name":     "Learn Go",
		"deadline": deadline,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "not_started", created["status"])
	assert.Equal(t, false, created["is_overdue"])
	goalID := uint(created["id"].(float64))

	resp = doJSON(t, app, fiber.MethodGet, "/api/goals/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	goals := decodeList(t, resp)
	require.Len(t, goals, 1)

	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/goals/%d", goalID), token, fiber.Map{
		"status": "completed",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "completed", updated["status"])
	assert.NotEmpty(t, updated["completed_at"])

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/goals/%d", goalID), token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/goals/%d", goalID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateGoalRejectsPastDeadlineOverHTTP(t *testing.T) {
	app, _ := setupTestServer(t)
	token := signupUser(t, app, "ada")

	resp := doJSON(t, app, fiber.MethodPost, "/api/goals/", token, fiber.Map{
		"name":     "Too late",
		"deadline": "2001-01-01",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGoalsAreInvisibleAcrossUsers(t *testing.T) {
	app, _ := setupTestServer(t)
	ada := signupUser(t, app, "ada")
	grace := signupUser(t, app, "grace")

	deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	resp := doJSON(t, app, fiber.MethodPost, "/api/goals/", ada, fiber.Map{
		"name":     "Private goal",
		"deadline": deadline,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	goalID := uint(decodeBody(t, resp)["id"].(float64))

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/goals/%d", goalID), grace, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/goals/", grace, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))
}

func TestListGoalsInvalidStatusFilter(t *testing.T) {
	app, _ := setupTestServer(t)
	token := signupUser(t, app, "ada")

	resp := doJSON(t, app, fiber.MethodGet, "/api/goals/?status=finished", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	app, _ := setupTestServer(t)
	token := signupUser(t, app, "ada")

	deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	for _, name := range []string{"a", "b", "c", "d"} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/goals/", token, fiber.Map{
			"name":     name,
			"deadline": deadline,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), stats["total"])
	assert.Equal(t, float64(0), stats["completed"])
	assert.Equal(t, float64(4), stats["active"])

	recent, ok := body["recent_goals"].([]any)
	require.True(t, ok)
	assert.Len(t, recent, 3)
}
