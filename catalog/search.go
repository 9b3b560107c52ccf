package catalog

import (
	"strings"
	"time"

	"coursehub/models"

	"gorm.io/gorm"
)

// SearchCriteria carries the optional course filters. Absent criteria impose
// no constraint; present ones narrow the result by logical AND. Range bounds
// are inclusive.
type SearchCriteria struct {
	Query       string
	CategoryID  *uint
	Level       string
	MinPrice    *float64
	MaxPrice    *float64
	DateFrom    *time.Time
	DateTo      *time.Time
	IsPublished *bool
	SortBy      string
	SortOrder   string
	Pagination
}

// CourseResult is the projection returned by Search.
type CourseResult struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Instructor      string    `json:"instructor"`
	Price           float64   `json:"price"`
	DurationHours   int       `json:"durationHours"`
	Level           string    `json:"level"`
	ImageURL        string    `json:"imageUrl"`
	IsPublished     bool      `json:"isPublished"`
	EnrollmentCount int       `json:"enrollmentCount"`
	Rating          float64   `json:"rating"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	CategoryID      uint      `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
}

// CourseDetail adds the caller's own enrollment state to a course.
type CourseDetail struct {
	CourseResult
	IsEnrolled   bool `json:"isEnrolled"`
	UserProgress *int `json:"userProgress"`
}

// PagedCourses bundles one result page with its metadata.
type PagedCourses struct {
	Items      []CourseResult `json:"items"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// applyVisibility restricts the query to what the role may see, ahead of any
// explicit filter. Students and anonymous callers only ever see published
// courses; their published override is ignored. Instructors and admins see
// everything and may narrow with the override.
func applyVisibility(q *gorm.DB, role Role, published *bool) *gorm.DB {
	if !role.SeesUnpublished() {
		return q.Where("is_published = ?", true)
	}
	if published != nil {
		return q.Where("is_published = ?", *published)
	}
	return q
}

// applyFilters composes the optional criteria into one conjunctive query.
func applyFilters(q *gorm.DB, c SearchCriteria) *gorm.DB {
	if s := strings.TrimSpace(c.Query); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(instructor) LIKE ?",
			pattern, pattern, pattern)
	}
	if c.CategoryID != nil {
		q = q.Where("category_id = ?", *c.CategoryID)
	}
	if c.Level != "" {
		q = q.Where("level = ?", c.Level)
	}
	if c.MinPrice != nil {
		q = q.Where("price >= ?", *c.MinPrice)
	}
	if c.MaxPrice != nil {
		q = q.Where("price <= ?", *c.MaxPrice)
	}
	if c.DateFrom != nil {
		q = q.Where("created_at >= ?", *c.DateFrom)
	}
	if c.DateTo != nil {
		q = q.Where("created_at <= ?", *c.DateTo)
	}
	return q
}

// Search runs the full pipeline: visibility gate, filters, sort, count,
// slice, projection.
func (s *Service) Search(role Role, c SearchCriteria) (*PagedCourses, error) {
	page := c.Pagination.normalized()

	q := s.db.Model(&models.Course{})
	q = applyVisibility(q, role, c.IsPublished)
	q = applyFilters(q, c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := q.Order(resolveSort(c.SortBy, c.SortOrder)).
		Preload("Category").
		Offset(page.offset()).Limit(page.PageSize).
		Find(&courses).Error; err != nil {
		return nil, err
	}

	items := make([]CourseResult, len(courses))
	for i, course := range courses {
		items[i] = toResult(course)
	}

	return &PagedCourses{
		Items:      items,
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages(total, page.PageSize),
	}, nil
}

// GetCourse returns one course, or ErrCourseNotFound when it is missing or
// hidden from the role. When userID is non-zero the caller's enrollment
// state is included.
func (s *Service) GetCourse(role Role, courseID, userID uint) (*CourseDetail, error) {
	var course models.Course
	err := s.db.Preload("Category").First(&course, courseID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished && !role.SeesUnpublished() {
		return nil, ErrCourseNotFound
	}

	detail := &CourseDetail{CourseResult: toResult(course)}
	if userID != 0 {
		var enrollment models.Enrollment
		err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
		if err == nil {
			detail.IsEnrolled = true
			progress := enrollment.ProgressPercent
			detail.UserProgress = &progress
		} else if !isNotFound(err) {
			return nil, err
		}
	}
	return detail, nil
}

func toResult(c models.Course) CourseResult {
	return CourseResult{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Instructor:      c.Instructor,
		Price:           c.Price,
		DurationHours:   c.DurationHours,
		Level:           c.Level,
		ImageURL:        c.ImageURL,
		IsPublished:     c.IsPublished,
		EnrollmentCount: c.EnrollmentCount,
		Rating:          c.Rating,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		CategoryID:      c.CategoryID,
		CategoryName:    c.Category.Name,
	}
}
