package jobs

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcileEnrollmentCounters rewrites every course's enrollment_count from
// the live enrollment rows. The enroll path keeps the counter in step
// transactionally; this job compensates for drift introduced outside it,
// such as admin deletes of users or courses.
func ReconcileEnrollmentCounters(db *gorm.DB) error {
	return db.Exec(`
		UPDATE courses SET enrollment_count = (
			SELECT COUNT(*) FROM enrollments WHERE enrollments.course_id = courses.id
		)
	`).Error
}

// StartScheduler runs the reconciliation nightly.
func StartScheduler(db *gorm.DB, logger *log.Logger) *cron.Cron {
	c := cron.New()
	c.AddFunc("@daily", func() {
		if err := ReconcileEnrollmentCounters(db); err != nil {
			logger.Printf("enrollment counter reconciliation failed: %v", err)
			return
		}
		logger.Println("enrollment counters reconciled")
	})
	c.Start()
	return c
}
