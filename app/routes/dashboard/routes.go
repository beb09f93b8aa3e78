package dashboard

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the KPI stats endpoint backing the
// dashboard's stat cards and charts.
func SetupDashboardRoutes(app *fiber.App, db *sql.DB) {
	dashboardAPI := app.Group("/api/dashboard")
	dashboardAPI.Use(auth.AuthMiddleware)

	dashboardAPI.Get("/stats", func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, db)
	})
}

func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
