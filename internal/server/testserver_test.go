package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aptify/internal/config"
	"aptify/internal/models"
	"aptify/internal/repository"
	"aptify/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "Str0ng-Enough-Pass!"

// setupTestServer builds a server on an in-memory database with the full
// route table. Prometheus is left out so parallel tests do not fight over the
// default registry.
func setupTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Achievement{},
		&models.Goal{},
		&models.Course{},
		&models.CourseResource{},
		&models.CourseEnrollment{},
	), "migrate sqlite")

	cfg := &config.Config{
		JWTSecret:            "test-jwt-secret-for-handler-tests",
		Env:                  "test",
		PhotoUploadDir:       t.TempDir(),
		PhotoMaxUploadSizeMB: 5,
	}

	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	srv := &Server{
		config:            cfg,
		db:                db,
		userRepo:          userRepo,
		goalRepo:          goalRepo,
		courseRepo:        courseRepo,
		enrollmentRepo:    enrollmentRepo,
		identityService:   service.NewIdentityService(userRepo),
		goalService:       service.NewGoalService(goalRepo),
		courseService:     service.NewCourseService(courseRepo, enrollmentRepo),
		enrollmentService: service.NewEnrollmentService(enrollmentRepo, courseRepo),
		photoService:      service.NewPhotoService(cfg),
	}

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

// doJSON issues a JSON request against the test app, attaching the bearer
// token when one is given.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody parses a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// decodeList parses a JSON array response body.
func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signupUser registers a user through the API and returns their token.
func signupUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, ok := body["token"].(string)
	require.True(t, ok, "signup response must include a token")
	return token
}
