package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"coursehub/config"
	"coursehub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{JWTSecret: "testsecret", ServerPort: "8080"}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Enrollment{},
	))

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin1234!"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: string(hash), Role: "admin", IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	app := fiber.New()
	SetupRoutes(app, db, cfg)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, status)
	token, _ := body["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func data(body map[string]interface{}) map[string]interface{} {
	d, _ := body["data"].(map[string]interface{})
	return d
}

func TestCatalogFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "Admin1234!")

	// Admin creates a category and two courses.
	status, body := env.request(t, "POST", "/api/categories", adminToken, map[string]interface{}{
		"name": "Programming",
	})
	require.Equal(t, fiber.StatusCreated, status)
	categoryID := data(body)["id"].(float64)

	status, body = env.request(t, "POST", "/api/courses", adminToken, map[string]interface{}{
		"title":      "Go from Scratch",
		"price":      49.99,
		"level":      "Beginner",
		"categoryId": categoryID,
	})
	require.Equal(t, fiber.StatusCreated, status)
	courseID := data(body)["id"].(float64)

	status, _ = env.request(t, "POST", "/api/courses", adminToken, map[string]interface{}{
		"title":      "Secret Draft",
		"categoryId": categoryID,
	})
	require.Equal(t, fiber.StatusCreated, status)

	// Courses start unpublished; publish the first one.
	status, _ = env.request(t, "PATCH", fmt.Sprintf("/api/courses/%.0f/publish", courseID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	// A student registers and searches: only the published course shows,
	// even with an explicit isPublished=false override.
	status, body = env.request(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Student",
		"email":    "student@example.com",
		"password": "Secret123!",
	})
	require.Equal(t, fiber.StatusCreated, status)
	studentToken := data(body)["token"].(string)

	status, body = env.request(t, "GET", "/api/courses/?isPublished=false", studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	items := data(body)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Go from Scratch", items[0].(map[string]interface{})["title"])
	assert.Equal(t, float64(1), data(body)["totalCount"])

	// Admin sees both.
	status, body = env.request(t, "GET", "/api/courses/", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), data(body)["totalCount"])

	// Enroll once, conflict the second time.
	enrollPath := fmt.Sprintf("/api/courses/%.0f/enroll", courseID)
	status, _ = env.request(t, "POST", enrollPath, studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = env.request(t, "POST", enrollPath, studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, status)

	// Progress clamps and completes.
	status, body = env.request(t, "POST", "/api/users/me/progress", studentToken, map[string]interface{}{
		"courseId":        courseID,
		"progressPercent": 150,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(100), data(body)["progressPercent"])
	assert.Equal(t, true, data(body)["isCompleted"])

	status, body = env.request(t, "GET", "/api/users/me/enrollments", studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	enrollments := body["data"].([]interface{})
	require.Len(t, enrollments, 1)

	// Dashboard is staff-only.
	status, _ = env.request(t, "GET", "/api/dashboard", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, body = env.request(t, "GET", "/api/dashboard", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	kpis := data(body)["kpis"].(map[string]interface{})
	assert.Equal(t, float64(2), kpis["totalCourses"])
	assert.Equal(t, float64(1), kpis["publishedCourses"])
	assert.Equal(t, float64(1), kpis["totalEnrollments"])
}

func TestAuthGuards(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.request(t, "POST", "/api/categories", "", map[string]string{"name": "X"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// Anonymous search works; visibility handles the rest.
	status, _ = env.request(t, "GET", "/api/courses/", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCategoryDeleteConflict(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin@example.com", "Admin1234!")

	_, body := env.request(t, "POST", "/api/categories", adminToken, map[string]string{"name": "Busy"})
	categoryID := data(body)["id"].(float64)

	status, _ := env.request(t, "POST", "/api/courses", adminToken, map[string]interface{}{
		"title":      "Occupies the category",
		"categoryId": categoryID,
	})
	require.Equal(t, fiber.StatusCreated, status)

	path := fmt.Sprintf("/api/categories/%.0f", categoryID)
	status, _ = env.request(t, "DELETE", path, adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, status)

	// Creating a course against a missing category is an invalid reference.
	status, _ = env.request(t, "POST", "/api/courses", adminToken, map[string]interface{}{
		"title":      "Orphan",
		"categoryId": 9999,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
