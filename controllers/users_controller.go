package controllers

import (
	"errors"
	"strconv"

	"coursehub/catalog"
	"coursehub/config"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsersController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Catalog *catalog.Service
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg, Catalog: catalog.NewService(db)}
}

func validRole(role string) bool {
	switch role {
	case "student", "instructor", "admin":
		return true
	}
	return false
}

func (uc *UsersController) GetAll(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		var enrollments int64
		uc.DB.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&enrollments)
		result = append(result, fiber.Map{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"isActive":        user.IsActive,
			"createdAt":       user.CreatedAt,
			"lastLoginAt":     user.LastLoginAt,
			"enrollmentCount": enrollments,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (uc *UsersController) Create(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var count int64
	if err := uc.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if count > 0 {
		return utils.Conflict(c, "Email already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	role := input.Role
	if !validRole(role) {
		role = "student"
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     true,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Email already in use")
		}
		return utils.InternalServerError(c, "Could not create user")
	}

	return utils.Created(c, fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Update patches role and active flag only.
func (uc *UsersController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Role != nil && validRole(*input.Role) {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"isActive": user.IsActive,
	})
}

func (uc *UsersController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	return utils.NoContent(c)
}

func (uc *UsersController) MyEnrollments(c *fiber.Ctx) error {
	enrollments, err := uc.Catalog.Enrollments(middleware.UserID(c))
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, enrollments)
}

func (uc *UsersController) UpdateProgress(c *fiber.Ctx) error {
	var input struct {
		CourseID        uint `json:"courseId"`
		ProgressPercent int  `json:"progressPercent"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	enrollment, err := uc.Catalog.UpdateProgress(middleware.UserID(c), input.CourseID, input.ProgressPercent)
	if err != nil {
		if errors.Is(err, catalog.ErrEnrollmentNotFound) {
			return utils.NotFound(c, "Not enrolled in this course")
		}
		return utils.InternalServerError(c, "Could not update progress")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progressPercent": enrollment.ProgressPercent,
		"isCompleted":     enrollment.IsCompleted,
		"completedAt":     enrollment.CompletedAt,
	})
}
