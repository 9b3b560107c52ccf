package controllers

import (
	"errors"
	"strconv"
	"time"

	"coursehub/catalog"
	"coursehub/config"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Catalog *catalog.Service
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Catalog: catalog.NewService(db)}
}

// [+] Search godoc
// @Summary Search the course catalog
// @Description Filter, sort and paginate courses under role visibility
// @Tags courses
// @Produce json
// @Router /courses [get]
func (cc *CoursesController) Search(c *fiber.Ctx) error {
	criteria := catalog.SearchCriteria{
		Query:     c.Query("query"),
		Level:     c.Query("level"),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
		Pagination: catalog.Pagination{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("pageSize", 10),
		},
	}

	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.BadRequest(c, "Invalid category ID")
		}
		categoryID := uint(id)
		criteria.CategoryID = &categoryID
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.BadRequest(c, "Invalid minimum price")
		}
		criteria.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.BadRequest(c, "Invalid maximum price")
		}
		criteria.MaxPrice = &v
	}
	if raw := c.Query("dateFrom"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid dateFrom format. Use YYYY-MM-DD")
		}
		criteria.DateFrom = &t
	}
	if raw := c.Query("dateTo"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid dateTo format. Use YYYY-MM-DD")
		}
		criteria.DateTo = &t
	}
	if raw := c.Query("isPublished"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid isPublished value")
		}
		criteria.IsPublished = &v
	}

	result, err := cc.Catalog.Search(middleware.CallerRole(c), criteria)
	if err != nil {
		return utils.InternalServerError(c, "Could not search courses")
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *CoursesController) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	detail, err := cc.Catalog.GetCourse(middleware.CallerRole(c), uint(id), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, detail)
}

type courseInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Instructor    string  `json:"instructor"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"durationHours"`
	Level         string  `json:"level"`
	ImageURL      string  `json:"imageUrl"`
	IsPublished   bool    `json:"isPublished"`
	CategoryID    uint    `json:"categoryId"`
}

func (cc *CoursesController) Create(c *fiber.Ctx) error {
	var input courseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := cc.requireCategory(input.CategoryID); err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			return utils.BadRequest(c, "Category does not exist")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	course := models.Course{
		Title:         input.Title,
		Description:   input.Description,
		Instructor:    input.Instructor,
		Price:         input.Price,
		DurationHours: input.DurationHours,
		Level:         input.Level,
		ImageURL:      input.ImageURL,
		CategoryID:    input.CategoryID,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, course)
}

func (cc *CoursesController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input courseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.requireCategory(input.CategoryID); err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			return utils.BadRequest(c, "Category does not exist")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Instructor = input.Instructor
	course.Price = input.Price
	course.DurationHours = input.DurationHours
	course.Level = input.Level
	course.ImageURL = input.ImageURL
	course.IsPublished = input.IsPublished
	course.CategoryID = input.CategoryID

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) TogglePublish(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	course.IsPublished = !course.IsPublished
	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          course.ID,
		"isPublished": course.IsPublished,
	})
}

func (cc *CoursesController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.NoContent(c)
}

func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	enrollment, err := cc.Catalog.Enroll(middleware.UserID(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCourseNotFound):
			return utils.NotFound(c, "Course not found")
		case errors.Is(err, catalog.ErrAlreadyEnrolled):
			return utils.Conflict(c, "Already enrolled in this course")
		default:
			return utils.InternalServerError(c, "Could not enroll")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message":    "Enrolled successfully",
		"enrollment": enrollment,
	})
}

func (cc *CoursesController) requireCategory(id uint) error {
	var count int64
	if err := cc.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return catalog.ErrUnknownCategory
	}
	return nil
}
