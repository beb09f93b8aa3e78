package bills

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupBillsRoutes sets up the bill submission and verification routes
func SetupBillsRoutes(app *fiber.App, db *sql.DB) {
	billsAPI := app.Group("/api/bills")
	billsAPI.Use(auth.AuthMiddleware)

	billsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetBillsAPI(c, db)
	})

	billsAPI.Get("/stats", func(c *fiber.Ctx) error {
		return GetBillStatsAPI(c, db)
	})

	billsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetBillByIDAPI(c, db)
	})

	billsAPI.Post("/", auth.RequireRoles(models.RoleSupplier, models.RoleAdmin), func(c *fiber.Ctx) error {
		return SubmitBillAPI(c, db)
	})

	// Verification pipeline transitions; role checks happen per action
	for _, action := range []string{"review", "verify", "reject", "certify", "settle"} {
		action := action
		billsAPI.Post("/:id/"+action, func(c *fiber.Ctx) error {
			return TransitionBillAPI(c, db, action)
		})
	}

	billsAPI.Post("/:id/purchase", auth.RequireRoles(models.RoleSPV, models.RoleAdmin), func(c *fiber.Ctx) error {
		return PurchaseBillAPI(c, db)
	})
}
