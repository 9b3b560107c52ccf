package controllers

import (
	"time"

	"coursehub/catalog"
	"coursehub/config"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Catalog *catalog.Service
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg, Catalog: catalog.NewService(db)}
}

// Get returns the KPI and chart bundle. The optional window only bounds the
// monthly revenue series.
func (dc *DashboardController) Get(c *fiber.Ctx) error {
	var dateFrom, dateTo *time.Time

	if raw := c.Query("dateFrom"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid dateFrom format. Use YYYY-MM-DD")
		}
		dateFrom = &t
	}
	if raw := c.Query("dateTo"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid dateTo format. Use YYYY-MM-DD")
		}
		dateTo = &t
	}

	report, err := dc.Catalog.Dashboard(dateFrom, dateTo)
	if err != nil {
		return utils.InternalServerError(c, "Could not build dashboard")
	}

	return utils.Success(c, fiber.StatusOK, report)
}
