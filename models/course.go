package models

import "time"

type Course struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
	// Stored as numeric(10,2); list price, two decimal places.
	Price           float64      `json:"price" gorm:"type:numeric(10,2)"`
	DurationHours   int          `json:"durationHours"`
	Level           string       `json:"level" gorm:"default:Beginner"` // Beginner, Intermediate, Advanced
	ImageURL        string       `json:"imageUrl"`
	IsPublished     bool         `json:"isPublished"`
	EnrollmentCount int          `json:"enrollmentCount"` // denormalized; kept in step with enrollments
	Rating          float64      `json:"rating"`          // 0-5, 0 = unrated
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	CategoryID      uint         `json:"categoryId" gorm:"index;not null"`
	Category        Category     `json:"-"`
	Enrollments     []Enrollment `json:"-"`
}
