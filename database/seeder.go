package database

import (
	"time"

	"coursehub/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts demo data on an empty store so a fresh deployment is usable
// right away. Does nothing if users already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin1234!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Admin Principal", Email: "admin@coursehub.io", PasswordHash: string(hash), Role: "admin", IsActive: true},
		{Name: "Instructor Demo", Email: "instructor@coursehub.io", PasswordHash: string(hash), Role: "instructor", IsActive: true},
		{Name: "Student Demo", Email: "student@coursehub.io", PasswordHash: string(hash), Role: "student", IsActive: true},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Programming", Description: "Software development courses", Icon: "code", IsActive: true},
		{Name: "Design", Description: "UI and UX design courses", Icon: "brush", IsActive: true},
		{Name: "Business", Description: "Business and management courses", Icon: "briefcase", IsActive: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	courses := []models.Course{
		{Title: "Go from Scratch", Description: "Backend development with Go", Instructor: "Rob Mills",
			Price: 49.99, DurationHours: 20, Level: "Beginner", IsPublished: true, Rating: 4.5, CategoryID: categories[0].ID},
		{Title: "Advanced SQL", Description: "Window functions, CTEs and query tuning", Instructor: "Dana Reeve",
			Price: 79.99, DurationHours: 15, Level: "Advanced", IsPublished: true, Rating: 4.8, CategoryID: categories[0].ID},
		{Title: "Design Systems", Description: "Building reusable component libraries", Instructor: "Maya Ortiz",
			Price: 59.99, DurationHours: 12, Level: "Intermediate", IsPublished: true, Rating: 4.2, CategoryID: categories[1].ID},
		{Title: "Product Strategy", Description: "From discovery to roadmap", Instructor: "Liam Chen",
			Price: 99.99, DurationHours: 10, Level: "Intermediate", IsPublished: false, CategoryID: categories[2].ID},
	}
	if err := db.Create(&courses).Error; err != nil {
		return err
	}

	student := users[2]
	completedAt := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	enrollments := []models.Enrollment{
		{UserID: student.ID, CourseID: courses[0].ID, EnrolledAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ProgressPercent: 75},
		{UserID: student.ID, CourseID: courses[1].ID, EnrolledAt: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), ProgressPercent: 100, IsCompleted: true, CompletedAt: &completedAt},
	}
	if err := db.Create(&enrollments).Error; err != nil {
		return err
	}

	// Keep the denormalized counters in line with the seeded rows.
	for _, e := range enrollments {
		if err := db.Model(&models.Course{}).Where("id = ?", e.CourseID).
			UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1")).Error; err != nil {
			return err
		}
	}

	return nil
}
