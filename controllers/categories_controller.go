package controllers

import (
	"errors"
	"strconv"
	"time"

	"coursehub/config"
	"coursehub/models"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoriesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCategoriesController(db *gorm.DB, cfg *config.Config) *CategoriesController {
	return &CategoriesController{DB: db, Cfg: cfg}
}

type categoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CourseCount int64     `json:"courseCount"`
}

func (cc *CategoriesController) toResponse(category models.Category, courseCount int64) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Icon:        category.Icon,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		CourseCount: courseCount,
	}
}

func (cc *CategoriesController) GetAll(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		var published int64
		if err := cc.DB.Model(&models.Course{}).
			Where("category_id = ? AND is_published = ?", category.ID, true).
			Count(&published).Error; err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		result = append(result, cc.toResponse(category, published))
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *CategoriesController) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var total int64
	if err := cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, cc.toResponse(category, total))
}

func (cc *CategoriesController) Create(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.ValidationError(c, map[string]string{"name": "Name is required"})
	}

	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		IsActive:    true,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not create category")
	}

	return utils.Created(c, cc.toResponse(category, 0))
}

func (cc *CategoriesController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		IsActive    bool   `json:"isActive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	category.Name = input.Name
	category.Description = input.Description
	category.Icon = input.Icon
	category.IsActive = input.IsActive
	if err := cc.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not update category")
	}

	var total int64
	cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&total)

	return utils.Success(c, fiber.StatusOK, cc.toResponse(category, total))
}

// Delete refuses to remove a category while any course references it.
func (cc *CategoriesController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var courses int64
	if err := cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if courses > 0 {
		return utils.Conflict(c, "Category has associated courses")
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete category")
	}

	return utils.NoContent(c)
}
