package catalog

import (
	"testing"

	"coursehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	course := createCourse(t, db, models.Course{Title: "Go", IsPublished: true, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	enrollment, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.ProgressPercent)
	assert.False(t, enrollment.IsCompleted)

	var reloaded models.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.Equal(t, 1, reloaded.EnrollmentCount)
}

func TestEnrollDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	course := createCourse(t, db, models.Course{Title: "Go", IsPublished: true, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// The counter moved exactly once.
	var reloaded models.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.Equal(t, 1, reloaded.EnrollmentCount)

	var rows int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestEnrollHiddenCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	draft := createCourse(t, db, models.Course{Title: "Draft", IsPublished: false, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	_, err := svc.Enroll(user.ID, draft.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Enroll(user.ID, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	// A failed enroll leaves no trace.
	var reloaded models.Course
	require.NoError(t, db.First(&reloaded, draft.ID).Error)
	assert.Equal(t, 0, reloaded.EnrollmentCount)
}

func TestUpdateProgressClamp(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	course := createCourse(t, db, models.Course{Title: "Go", IsPublished: true, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	enrollment, err := svc.UpdateProgress(user.ID, course.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.ProgressPercent)
	assert.True(t, enrollment.IsCompleted)
	assert.NotNil(t, enrollment.CompletedAt)

	enrollment, err = svc.UpdateProgress(user.ID, course.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.ProgressPercent)
}

func TestUpdateProgressCompletionIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	course := createCourse(t, db, models.Course{Title: "Go", IsPublished: true, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	first, err := svc.UpdateProgress(user.ID, course.ID, 100)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)
	completedAt := *first.CompletedAt

	second, err := svc.UpdateProgress(user.ID, course.ID, 100)
	require.NoError(t, err)
	assert.True(t, second.IsCompleted)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, completedAt, *second.CompletedAt)
}

func TestUpdateProgressRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	course := createCourse(t, db, models.Course{Title: "Go", IsPublished: true, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	_, err := svc.UpdateProgress(user.ID, course.ID, 50)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestEnrollments(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	category := createCategory(t, db, "Programming")
	first := createCourse(t, db, models.Course{Title: "Go", IsPublished: true, CategoryID: category.ID})
	second := createCourse(t, db, models.Course{Title: "SQL", IsPublished: true, CategoryID: category.ID})
	user := createUser(t, db, "student@example.com", "student")

	_, err := svc.Enroll(user.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(user.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.UpdateProgress(user.ID, first.ID, 100)
	require.NoError(t, err)

	summaries, err := svc.Enrollments(user.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byCourse := map[uint]EnrollmentSummary{}
	for _, s := range summaries {
		byCourse[s.CourseID] = s
	}
	assert.Equal(t, "Go", byCourse[first.ID].CourseTitle)
	assert.True(t, byCourse[first.ID].IsCompleted)
	assert.Equal(t, 100, byCourse[first.ID].ProgressPercent)
	assert.False(t, byCourse[second.ID].IsCompleted)
}
