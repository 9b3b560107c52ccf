package controllers

import (
	"errors"
	"time"

	"coursehub/config"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a student account and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var count int64
	if err := ac.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if count > 0 {
		return utils.Conflict(c, "Email already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         "student",
		IsActive:     true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Email already in use")
		}
		return utils.InternalServerError(c, "Could not create user")
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Created(c, fiber.Map{
		"token":  token,
		"role":   user.Role,
		"name":   user.Name,
		"email":  user.Email,
		"userId": user.ID,
	})
}

// [+] Login godoc
// @Summary User login
// @Description Authenticates a user and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	err := ac.DB.Where("email = ? AND is_active = ?", input.Email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update last login")
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token":  token,
		"role":   user.Role,
		"name":   user.Name,
		"email":  user.Email,
		"userId": user.ID,
	})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	var user models.User
	if err := ac.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"createdAt":   user.CreatedAt,
		"lastLoginAt": user.LastLoginAt,
	})
}
