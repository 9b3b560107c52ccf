package routes

import (
	"coursehub/catalog"
	"coursehub/config"
	"coursehub/controllers"
	"coursehub/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authRequired := middleware.AuthMiddleware(cfg)
	authOptional := middleware.OptionalAuthMiddleware(cfg)
	adminOnly := middleware.RequireRoles(catalog.RoleAdmin)
	staffOnly := middleware.RequireRoles(catalog.RoleAdmin, catalog.RoleInstructor)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authRequired, authController.Me)

	// Category routes
	categoriesController := controllers.NewCategoriesController(db, cfg)
	categories := app.Group("/api/categories")
	categories.Get("/", categoriesController.GetAll)
	categories.Get("/:id", categoriesController.GetByID)
	categories.Post("/", authRequired, adminOnly, categoriesController.Create)
	categories.Put("/:id", authRequired, adminOnly, categoriesController.Update)
	categories.Delete("/:id", authRequired, adminOnly, categoriesController.Delete)

	// Course routes; search and detail are open, visibility is decided by role
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses")
	courses.Get("/", authOptional, coursesController.Search)
	courses.Get("/:id", authOptional, coursesController.GetByID)
	courses.Post("/", authRequired, staffOnly, coursesController.Create)
	courses.Put("/:id", authRequired, staffOnly, coursesController.Update)
	courses.Patch("/:id/publish", authRequired, adminOnly, coursesController.TogglePublish)
	courses.Delete("/:id", authRequired, adminOnly, coursesController.Delete)
	courses.Post("/:id/enroll", authRequired, coursesController.Enroll)

	// User routes
	usersController := controllers.NewUsersController(db, cfg)
	users := app.Group("/api/users")
	users.Get("/me/enrollments", authRequired, usersController.MyEnrollments)
	users.Post("/me/progress", authRequired, usersController.UpdateProgress)
	users.Get("/", authRequired, adminOnly, usersController.GetAll)
	users.Post("/", authRequired, adminOnly, usersController.Create)
	users.Patch("/:id", authRequired, adminOnly, usersController.Update)
	users.Delete("/:id", authRequired, adminOnly, usersController.Delete)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard", authRequired, staffOnly, dashboardController.Get)
}
