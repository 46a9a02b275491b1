package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCourse(t *testing.T, app *fiber.App, token, name string) uint {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/courses/", token, fiber.Map{
		"name":     name,
		"category": "Backend",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return uint(decodeBody(t, resp)["id"].(float64))
}

func publishCourse(t *testing.T, app *fiber.App, token string, courseID uint) {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/publish", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCoursePublishEnrollFlow(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")
	learner := signupUser(t, app, "grace")

	// Creation always yields a draft.
	resp := doJSON(t, app, fiber.MethodPost, "/api/courses/", creator, fiber.Map{
		"name":     "Go from scratch",
		"category": "Backend",
		"level":    "beginner",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "draft", created["status"])
	courseID := uint(created["id"].(float64))

	// Drafts are invisible to other users, in the catalog and directly.
	resp = doJSON(t, app, fiber.MethodGet, "/api/courses/", learner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/courses/%d", courseID), learner, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Enrolling in an invisible draft is indistinguishable from a missing course.
	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", courseID), learner, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The creator is told their own course is simply not published yet.
	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", courseID), creator, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	publishCourse(t, app, creator, courseID)

	// Now the course is browsable and enrollable.
	resp = doJSON(t, app, fiber.MethodGet, "/api/courses/", learner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	catalog := decodeList(t, resp)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Go from scratch", catalog[0]["name"])

	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", courseID), learner, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	enrollment := decodeBody(t, resp)
	assert.Equal(t, "enrolled", enrollment["status"])

	// Enrolling twice hits the uniqueness constraint.
	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", courseID), learner, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Completing the course via progress.
	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/enrollments/%d/progress", courseID), learner, fiber.Map{
		"progress": 100,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	completed := decodeBody(t, resp)
	assert.Equal(t, "completed", completed["status"])
	assert.NotEmpty(t, completed["completed_at"])

	resp = doJSON(t, app, fiber.MethodGet, "/api/enrollments/stats", learner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decodeBody(t, resp)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["completed"])
}

func TestGetCourseDetailGroupsResources(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")
	courseID := createCourse(t, app, creator, "Go from scratch")

	for _, r := range []fiber.Map{
		{"title": "A Tour of Go", "resource_type": "interactive", "url": "https://go.dev/tour", "quality_rating": "excellent"},
		{"title": "Effective Go", "resource_type": "documentation", "url": "https://go.dev/doc/effective_go", "is_official": true},
		{"title": "Go by Example", "resource_type": "interactive", "url": "https://gobyexample.com"},
	} {
		resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/resources", courseID), creator, r)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/courses/%d", courseID), creator, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decodeBody(t, resp)
	assert.Equal(t, true, detail["is_owner"])

	course, ok := detail["course"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), course["resource_count"])

	groups, ok := detail["resources_by_type"].([]any)
	require.True(t, ok)
	require.Len(t, groups, 2)

	// The interactive group leads because it holds the excellent resource.
	first, ok := groups[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "interactive", first["type"])
	firstResources, ok := first["resources"].([]any)
	require.True(t, ok)
	require.Len(t, firstResources, 2)
	top, ok := firstResources[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A Tour of Go", top["title"])
}

func TestCourseMutationsAreOwnerOnly(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")
	other := signupUser(t, app, "grace")
	courseID := createCourse(t, app, creator, "Go from scratch")
	publishCourse(t, app, creator, courseID)

	resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/courses/%d", courseID), other, fiber.Map{
		"name": "Hijacked",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/courses/%d", courseID), other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/resources", courseID), other, fiber.Map{
		"title": "Sneaky", "resource_type": "article", "url": "https://example.com",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResourceUpdateAndDelete(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")
	courseID := createCourse(t, app, creator, "Go from scratch")

	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/resources", courseID), creator, fiber.Map{
		"title": "A Tour of Go", "resource_type": "interactive", "url": "https://go.dev/tour",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resourceID := uint(decodeBody(t, resp)["id"].(float64))

	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/resources/%d", resourceID), creator, fiber.Map{
		"quality_rating": "excellent",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "excellent", updated["quality_rating"])
	assert.Equal(t, "A Tour of Go", updated["title"])

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/resources/%d", resourceID), creator, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/resources/%d", resourceID), creator, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAddResourceRejectsBadURL(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")
	courseID := createCourse(t, app, creator, "Go from scratch")

	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/resources", courseID), creator, fiber.Map{
		"title": "Broken", "resource_type": "article", "url": "not a url",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProgressOutOfRange(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")
	learner := signupUser(t, app, "grace")
	courseID := createCourse(t, app, creator, "Go from scratch")
	publishCourse(t, app, creator, courseID)

	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", courseID), learner, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/enrollments/%d/progress", courseID), learner, fiber.Map{
		"progress": 101,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListMyCoursesIncludesAllStatuses(t *testing.T) {
	app, _ := setupTestServer(t)
	creator := signupUser(t, app, "ada")

	createCourse(t, app, creator, "Draft course")
	liveID := createCourse(t, app, creator, "Live course")
	publishCourse(t, app, creator, liveID)

	resp := doJSON(t, app, fiber.MethodGet, "/api/courses/mine", creator, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	mine := decodeList(t, resp)
	assert.Len(t, mine, 2)

	archiveResp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/courses/%d/archive", liveID), creator, nil)
	require.Equal(t, fiber.StatusOK, archiveResp.StatusCode)
	assert.Equal(t, "archived", decodeBody(t, archiveResp)["status"])
}
