package catalog

import (
	"database/sql"
	"math"
	"sort"
	"time"

	"coursehub/models"
)

// Kpis are the scalar dashboard metrics. TotalRevenue is a proxy: list price
// times enrollment count over published courses, not collected money — there
// is no payment entity to derive actual revenue from.
type Kpis struct {
	TotalCourses         int64   `json:"totalCourses"`
	PublishedCourses     int64   `json:"publishedCourses"`
	ActiveCategories     int64   `json:"activeCategories"`
	ActiveUsers          int64   `json:"activeUsers"`
	TotalEnrollments     int64   `json:"totalEnrollments"`
	TotalRevenue         float64 `json:"totalRevenue"`
	AverageRating        float64 `json:"averageRating"`
	AverageDurationHours float64 `json:"averageDurationHours"`
}

// ChartPoint is one labeled value of a grouped series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DashboardReport bundles the KPIs with the grouped chart series.
type DashboardReport struct {
	Kpis                  Kpis         `json:"kpis"`
	EnrollmentsByCategory []ChartPoint `json:"enrollmentsByCategory"`
	CoursesByLevel        []ChartPoint `json:"coursesByLevel"`
	RevenueByMonth        []ChartPoint `json:"revenueByMonth"`
	TopCoursesByRating    []ChartPoint `json:"topCoursesByRating"`
}

// Dashboard recomputes the report from the current store state. The date
// window only bounds the monthly revenue series and defaults to the trailing
// twelve months. Everything is recomputed per request; the dataset is small
// enough that rollups are not worth their consistency cost.
func (s *Service) Dashboard(dateFrom, dateTo *time.Time) (*DashboardReport, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, -12, 0)
	to := now
	if dateFrom != nil {
		from = *dateFrom
	}
	if dateTo != nil {
		to = *dateTo
	}

	kpis, err := s.computeKpis()
	if err != nil {
		return nil, err
	}

	byCategory, err := s.enrollmentsByCategory()
	if err != nil {
		return nil, err
	}
	byLevel, err := s.coursesByLevel()
	if err != nil {
		return nil, err
	}
	byMonth, err := s.revenueByMonth(from, to)
	if err != nil {
		return nil, err
	}
	topRated, err := s.topCoursesByRating()
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		Kpis:                  kpis,
		EnrollmentsByCategory: byCategory,
		CoursesByLevel:        byLevel,
		RevenueByMonth:        byMonth,
		TopCoursesByRating:    topRated,
	}, nil
}

func (s *Service) computeKpis() (Kpis, error) {
	var k Kpis
	counts := []func() error{
		func() error { return s.db.Model(&models.Course{}).Count(&k.TotalCourses).Error },
		func() error {
			return s.db.Model(&models.Course{}).Where("is_published = ?", true).Count(&k.PublishedCourses).Error
		},
		func() error {
			return s.db.Model(&models.Category{}).Where("is_active = ?", true).Count(&k.ActiveCategories).Error
		},
		func() error {
			return s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&k.ActiveUsers).Error
		},
		func() error { return s.db.Model(&models.Enrollment{}).Count(&k.TotalEnrollments).Error },
	}
	for _, count := range counts {
		if err := count(); err != nil {
			return Kpis{}, err
		}
	}

	if err := s.db.Model(&models.Course{}).Where("is_published = ?", true).
		Select("COALESCE(SUM(price * enrollment_count), 0)").Scan(&k.TotalRevenue).Error; err != nil {
		return Kpis{}, err
	}

	var avgRating sql.NullFloat64
	if err := s.db.Model(&models.Course{}).
		Where("is_published = ? AND rating > 0", true).
		Select("AVG(rating)").Scan(&avgRating).Error; err != nil {
		return Kpis{}, err
	}
	if avgRating.Valid {
		k.AverageRating = round(avgRating.Float64, 2)
	}

	var avgDuration sql.NullFloat64
	if err := s.db.Model(&models.Course{}).Where("is_published = ?", true).
		Select("AVG(duration_hours)").Scan(&avgDuration).Error; err != nil {
		return Kpis{}, err
	}
	if avgDuration.Valid {
		k.AverageDurationHours = round(avgDuration.Float64, 1)
	}

	return k, nil
}

func (s *Service) enrollmentsByCategory() ([]ChartPoint, error) {
	var points []ChartPoint
	err := s.db.Model(&models.Course{}).
		Select("categories.name AS label, COALESCE(SUM(courses.enrollment_count), 0) AS value").
		Joins("JOIN categories ON categories.id = courses.category_id").
		Where("courses.is_published = ?", true).
		Group("categories.name").
		Scan(&points).Error
	return points, err
}

func (s *Service) coursesByLevel() ([]ChartPoint, error) {
	var points []ChartPoint
	err := s.db.Model(&models.Course{}).
		Select("level AS label, COUNT(*) AS value").
		Where("is_published = ?", true).
		Group("level").
		Scan(&points).Error
	return points, err
}

// revenueByMonth buckets per-enrollment course prices by enrollment month.
// Bucketing happens in process to keep the query portable across dialects;
// the window bounds the row count.
func (s *Service) revenueByMonth(from, to time.Time) ([]ChartPoint, error) {
	var rows []struct {
		EnrolledAt time.Time
		Price      float64
	}
	if err := s.db.Model(&models.Enrollment{}).
		Select("enrollments.enrolled_at, courses.price").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.enrolled_at >= ? AND enrollments.enrolled_at <= ?", from, to).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]float64)
	for _, r := range rows {
		buckets[r.EnrolledAt.UTC().Format("2006-01")] += r.Price
	}

	points := make([]ChartPoint, 0, len(buckets))
	for label, value := range buckets {
		points = append(points, ChartPoint{Label: label, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points, nil
}

func (s *Service) topCoursesByRating() ([]ChartPoint, error) {
	var points []ChartPoint
	err := s.db.Model(&models.Course{}).
		Select("title AS label, rating AS value").
		Where("is_published = ? AND rating > 0", true).
		Order("rating DESC").
		Limit(5).
		Scan(&points).Error
	return points, err
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
