package models

import "time"

// Enrollment is a fact record: created on enroll, updated through progress,
// closed at completion. No path removes one.
type Enrollment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"userId" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	CourseID        uint       `json:"courseId" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	EnrolledAt      time.Time  `json:"enrolledAt"`
	ProgressPercent int        `json:"progressPercent"` // 0-100
	IsCompleted     bool       `json:"isCompleted"`
	CompletedAt     *time.Time `json:"completedAt"` // set once, when progress first reaches 100
	User            User       `json:"-"`
	Course          Course     `json:"-"`
}
