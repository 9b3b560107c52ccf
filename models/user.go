package models

import "time"

type User struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"not null"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string       `json:"-" gorm:"not null"`
	Role         string       `json:"role" gorm:"default:student"` // student, instructor, admin
	IsActive     bool         `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastLoginAt  *time.Time   `json:"lastLoginAt"`
	Enrollments  []Enrollment `json:"-"`
}
