package accounts

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupAccountsRoutes sets up the trust account registry routes
func SetupAccountsRoutes(app *fiber.App, db *sql.DB) {
	accountsAPI := app.Group("/api/trust-accounts")
	accountsAPI.Use(auth.AuthMiddleware)
	accountsAPI.Use(auth.RequireRoles(models.RoleSPV, models.RoleTreasury, models.RoleAdmin))

	accountsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetTrustAccountsAPI(c, db)
	})

	accountsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetTrustAccountByIDAPI(c, db)
	})

	accountsAPI.Post("/", auth.RequireRoles(models.RoleSPV, models.RoleAdmin), func(c *fiber.Ctx) error {
		return CreateTrustAccountAPI(c, db)
	})
}
