package catalog

import (
	"errors"
	"time"

	"coursehub/models"

	"gorm.io/gorm"
)

// EnrollmentSummary is one row of a user's enrollment list.
type EnrollmentSummary struct {
	CourseID        uint       `json:"courseId"`
	CourseTitle     string     `json:"courseTitle"`
	EnrolledAt      time.Time  `json:"enrolledAt"`
	ProgressPercent int        `json:"progressPercent"`
	IsCompleted     bool       `json:"isCompleted"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// Enroll creates an enrollment at progress 0 and increments the course
// counter in the same transaction. Returns ErrCourseNotFound for missing or
// unpublished courses and ErrAlreadyEnrolled for a duplicate (user, course)
// pair. The unique index on the pair is the arbiter under concurrency: of
// two racing attempts exactly one insert succeeds.
func (s *Service) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
			if isNotFound(err) {
				return ErrCourseNotFound
			}
			return err
		}

		var existing models.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			return ErrAlreadyEnrolled
		}
		if !isNotFound(err) {
			return err
		}

		enrollment = models.Enrollment{
			UserID:     userID,
			CourseID:   courseID,
			EnrolledAt: time.Now().UTC(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		return tx.Model(&models.Course{}).Where("id = ?", courseID).
			UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UpdateProgress sets the enrollment's progress to the requested value
// clamped to [0,100]. The first time the clamped value reaches 100 the
// enrollment is marked completed and stamped; repeating 100 afterwards
// changes nothing. Progress is not forced monotonic.
func (s *Service) UpdateProgress(userID, courseID uint, requested int) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	enrollment.ProgressPercent = clamp(requested, 0, 100)
	if enrollment.ProgressPercent == 100 && !enrollment.IsCompleted {
		now := time.Now().UTC()
		enrollment.IsCompleted = true
		enrollment.CompletedAt = &now
	}

	if err := s.db.Save(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Enrollments lists a user's enrollments with course titles, newest first.
func (s *Service) Enrollments(userID uint) ([]EnrollmentSummary, error) {
	var enrollments []models.Enrollment
	if err := s.db.Preload("Course").Where("user_id = ?", userID).
		Order("enrolled_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	summaries := make([]EnrollmentSummary, len(enrollments))
	for i, e := range enrollments {
		summaries[i] = EnrollmentSummary{
			CourseID:        e.CourseID,
			CourseTitle:     e.Course.Title,
			EnrolledAt:      e.EnrolledAt,
			ProgressPercent: e.ProgressPercent,
			IsCompleted:     e.IsCompleted,
			CompletedAt:     e.CompletedAt,
		}
	}
	return summaries, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
