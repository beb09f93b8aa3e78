package waterfall

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/Einzelgaanger/CPF/app/services"
	"github.com/gofiber/fiber/v2"
)

// SetupWaterfallRoutes wires the waterfall engine endpoint and the
// dashboard listing endpoints. The engine comes in pre-constructed so the
// routes never touch ambient state.
func SetupWaterfallRoutes(app *fiber.App, db *sql.DB, engine *services.WaterfallEngine) {
	api := app.Group("/api/waterfall")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRoles(models.RoleSPV, models.RoleTreasury, models.RoleAdmin))

	api.Post("/", func(c *fiber.Ctx) error {
		return WaterfallActionAPI(c, engine)
	})

	api.Get("/distributions", func(c *fiber.Ctx) error {
		return GetDistributionsAPI(c, db)
	})

	api.Get("/transactions", func(c *fiber.Ctx) error {
		return GetTransactionsAPI(c, db)
	})

	api.Get("/reconciliation", func(c *fiber.Ctx) error {
		return GetReconciliationAPI(c, db)
	})
}
