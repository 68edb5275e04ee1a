package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/config"
	"elearn/database"
	"elearn/store"
	"elearn/utils"
)

func setupApp(t *testing.T, mutate ...func(*config.Config)) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTKey:      "test-secret",
		SaltRound:   4,
		FrontendURL: "*",
		StaticDir:   t.TempDir(),
		LogMode:     "test",
	}
	for _, m := range mutate {
		m(cfg)
	}
	prevCfg, prevDB, prevRevoker := config.AppConfig, database.Database, utils.Revoker
	config.AppConfig = cfg
	utils.Revoker = utils.NewMemoryTokenRevoker()

	st, err := store.OpenFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	_, err = database.SeedCourses(context.Background(), st, filepath.Join("..", "seed", "courses.yaml"))
	require.NoError(t, err)
	database.Database = database.DbInstance{Store: st}

	t.Cleanup(func() {
		config.AppConfig, database.Database, utils.Revoker = prevCfg, prevDB, prevRevoker
	})
	return NewApp()
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
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
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

type session struct {
	UserID string
	Token  string
}

func register(t *testing.T, app *fiber.App, name, email string) session {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/auth/register", fiber.Map{"name": name, "email": email, "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	body := decode(t, raw)
	user := body["user"].(map[string]interface{})
	return session{UserID: user["id"].(string), Token: body["token"].(string)}
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	status, raw := call(t, app, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "running")
}

func TestLearnerJourney(t *testing.T) {
	app := setupApp(t)
	a := register(t, app, "Alice", "alice@example.com")

	status, raw := call(t, app, http.MethodPost, "/api/auth/login", fiber.Map{"email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, status, string(raw))
	login := decode(t, raw)
	assert.Equal(t, "Login successful", login["message"])
	user := login["user"].(map[string]interface{})
	assert.Equal(t, a.UserID, user["id"])
	assert.NotContains(t, user, "password")
	token := login["token"].(string)

	status, raw = call(t, app, http.MethodPost, "/api/enrollments", fiber.Map{"courseId": "101"}, token)
	require.Equal(t, http.StatusCreated, status, string(raw))
	enrollment := decode(t, raw)
	assert.Equal(t, "active", enrollment["status"])

	status, raw = call(t, app, http.MethodPost, "/api/enrollments", fiber.Map{"courseId": "101"}, token)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, enrollment["id"], decode(t, raw)["id"])

	for _, lesson := range []int{1, 2} {
		status, raw = call(t, app, http.MethodPost, "/api/progress", fiber.Map{"courseId": "101", "lessonId": lesson, "completed": true}, token)
		require.Equal(t, http.StatusOK, status, string(raw))
		assert.Equal(t, true, decode(t, raw)["success"])
	}

	status, raw = call(t, app, http.MethodGet, "/api/analytics/"+a.UserID, nil, token)
	require.Equal(t, http.StatusOK, status, string(raw))
	analytics := decode(t, raw)
	assert.EqualValues(t, 2, analytics["totalLessons"])
	assert.EqualValues(t, 1, analytics["totalCourses"])
	assert.EqualValues(t, 0, analytics["completedCourses"])
	assert.EqualValues(t, 0, analytics["certificates"])
	assert.Len(t, analytics["progress"], 1)

	status, raw = call(t, app, http.MethodGet, "/api/progress/"+a.UserID, nil, token)
	require.Equal(t, http.StatusOK, status, string(raw))
	var progress []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &progress))
	require.Len(t, progress, 1)
	assert.Equal(t, []interface{}{float64(1), float64(2)}, progress[0]["lessonsCompleted"])

	status, raw = call(t, app, http.MethodGet, "/api/enrollments", nil, token)
	require.Equal(t, http.StatusOK, status)
	var enrollments []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &enrollments))
	require.Len(t, enrollments, 1)
	assert.Equal(t, "in_progress", enrollments[0]["status"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)
	register(t, app, "Alice", "alice@example.com")

	status, raw := call(t, app, http.MethodPost, "/api/auth/register", fiber.Map{"name": "Again", "email": "alice@example.com", "password": "other123"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", decode(t, raw)["error"])

	status, raw = call(t, app, http.MethodPost, "/api/auth/register", fiber.Map{"email": "bob@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode(t, raw)
	assert.Equal(t, "All fields are required", body["error"])
	assert.Contains(t, body["fields"], "name")
	assert.Contains(t, body["fields"], "password")

	status, _ = call(t, app, http.MethodPost, "/api/auth/register", fiber.Map{"name": "Bob", "email": "not-an-email", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginFailuresDoNotRevealAccounts(t *testing.T) {
	app := setupApp(t)
	register(t, app, "Alice", "alice@example.com")

	status, wrongPassword := call(t, app, http.MethodPost, "/api/auth/login", fiber.Map{"email": "alice@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, unknownEmail := call(t, app, http.MethodPost, "/api/auth/login", fiber.Map{"email": "ghost@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	assert.JSONEq(t, string(wrongPassword), string(unknownEmail))
	assert.Equal(t, "Invalid credentials", decode(t, wrongPassword)["error"])
}

func TestAuthGate(t *testing.T) {
	app := setupApp(t)
	a := register(t, app, "Alice", "alice@example.com")

	status, raw := call(t, app, http.MethodGet, "/api/enrollments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", decode(t, raw)["error"])

	status, raw = call(t, app, http.MethodGet, "/api/enrollments", nil, "not.a.token")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", decode(t, raw)["error"])

	status, raw = call(t, app, http.MethodGet, "/api/auth/me", nil, a.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice@example.com", decode(t, raw)["email"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/logout", nil, a.Token)
	require.Equal(t, http.StatusOK, status)

	status, raw = call(t, app, http.MethodGet, "/api/auth/me", nil, a.Token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", decode(t, raw)["error"])
}

func TestReadsByUserIDAreSelfOnly(t *testing.T) {
	app := setupApp(t)
	a := register(t, app, "Alice", "alice@example.com")
	b := register(t, app, "Bob", "bob@example.com")

	status, _ := call(t, app, http.MethodGet, "/api/progress/"+a.UserID, nil, b.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/analytics/"+a.UserID, nil, b.Token)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCourses(t *testing.T) {
	app := setupApp(t)

	status, raw := call(t, app, http.MethodGet, "/api/courses", nil, "")
	require.Equal(t, http.StatusOK, status)
	var courses []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &courses))
	assert.Len(t, courses, 3)
	for _, course := range courses {
		assert.Equal(t, course["lessons"], course["videoLessons"], course["id"])
	}

	status, raw = call(t, app, http.MethodGet, "/api/courses/101", nil, "")
	require.Equal(t, http.StatusOK, status)
	detail := decode(t, raw)
	assert.Len(t, detail["lessons"], 6)
	assert.Equal(t, detail["lessons"], detail["videoLessons"])

	status, raw = call(t, app, http.MethodGet, "/api/courses/999", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Course not found", decode(t, raw)["error"])
}

func TestProgressRejectsUnknownCourseAndLesson(t *testing.T) {
	app := setupApp(t)
	a := register(t, app, "Alice", "alice@example.com")

	status, _ := call(t, app, http.MethodPost, "/api/progress", fiber.Map{"courseId": "999", "lessonId": 1, "completed": true}, a.Token)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodPost, "/api/progress", fiber.Map{"courseId": "101", "lessonId": 99, "completed": true}, a.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := call(t, app, http.MethodPost, "/api/progress", fiber.Map{"courseId": "101", "lessonId": 1}, a.Token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode(t, raw)["fields"], "completed")
}

func TestCertificateFlow(t *testing.T) {
	app := setupApp(t)
	a := register(t, app, "Alice", "alice@example.com")

	status, _ := call(t, app, http.MethodPost, "/api/certificates", fiber.Map{"courseId": "101"}, a.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodPost, "/api/enrollments", fiber.Map{"courseId": "101"}, a.Token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/certificates", fiber.Map{"courseId": "101"}, a.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	for lesson := 1; lesson <= 6; lesson++ {
		status, _ = call(t, app, http.MethodPost, "/api/progress", fiber.Map{"courseId": "101", "lessonId": lesson, "completed": true}, a.Token)
		require.Equal(t, http.StatusOK, status)
	}

	status, raw := call(t, app, http.MethodPost, "/api/certificates", fiber.Map{"courseId": "101"}, a.Token)
	require.Equal(t, http.StatusCreated, status, string(raw))
	first := decode(t, raw)

	status, raw = call(t, app, http.MethodPost, "/api/certificates", fiber.Map{"courseId": "101"}, a.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first["id"], decode(t, raw)["id"])

	status, raw = call(t, app, http.MethodGet, "/api/certificates", nil, a.Token)
	require.Equal(t, http.StatusOK, status)
	var certs []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &certs))
	assert.Len(t, certs, 1)

	status, raw = call(t, app, http.MethodGet, "/api/analytics/"+a.UserID, nil, a.Token)
	require.Equal(t, http.StatusOK, status)
	analytics := decode(t, raw)
	assert.EqualValues(t, 1, analytics["completedCourses"])
	assert.EqualValues(t, 6, analytics["totalLessons"])
}

func TestForumsAndPosts(t *testing.T) {
	app := setupApp(t)
	a := register(t, app, "Alice", "alice@example.com")

	status, _ := call(t, app, http.MethodPost, "/api/forums", fiber.Map{"courseId": "999", "title": "Lost"}, a.Token)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw := call(t, app, http.MethodPost, "/api/forums", fiber.Map{"courseId": "101", "title": "Questions", "description": "Ask away"}, a.Token)
	require.Equal(t, http.StatusCreated, status, string(raw))
	forum := decode(t, raw)
	assert.Equal(t, a.UserID, forum["createdBy"])
	forumID := forum["id"].(string)

	status, _ = call(t, app, http.MethodPost, "/api/posts", fiber.Map{"forumId": "missing", "content": "hi"}, a.Token)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = call(t, app, http.MethodPost, "/api/posts", fiber.Map{"forumId": forumID, "content": "Where do I start?"}, a.Token)
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, a.UserID, decode(t, raw)["authorId"])

	status, raw = call(t, app, http.MethodGet, "/api/forums/101", nil, "")
	require.Equal(t, http.StatusOK, status)
	var forums []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &forums))
	assert.Len(t, forums, 1)

	status, raw = call(t, app, http.MethodGet, "/api/posts/"+forumID, nil, "")
	require.Equal(t, http.StatusOK, status)
	var posts []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Where do I start?", posts[0]["content"])
}

func TestAuthRateLimit(t *testing.T) {
	app := setupApp(t, func(c *config.Config) { c.AuthLimitMax = 2 })

	creds := fiber.Map{"email": "ghost@example.com", "password": "nope"}
	for i := 0; i < 2; i++ {
		status, _ := call(t, app, http.MethodPost, "/api/auth/login", creds, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, _ := call(t, app, http.MethodPost, "/api/auth/login", creds, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	app := setupApp(t)
	status, raw := call(t, app, http.MethodGet, "/api/nothing-here", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, decode(t, raw), "error")
}
