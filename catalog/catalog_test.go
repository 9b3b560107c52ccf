package catalog

import (
	"testing"
	"time"

	"coursehub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createCourse(t *testing.T, db *gorm.DB, course models.Course) models.Course {
	t.Helper()
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, PasswordHash: "x", Role: role, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
