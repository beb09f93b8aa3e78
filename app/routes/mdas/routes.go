package mdas

import (
	"database/sql"

	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/models"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupMDAsRoutes sets up the MDA registry routes
func SetupMDAsRoutes(app *fiber.App, db *sql.DB) {
	mdasAPI := app.Group("/api/mdas")
	mdasAPI.Use(auth.AuthMiddleware)

	mdasAPI.Get("/", func(c *fiber.Ctx) error {
		return GetMDAsAPI(c, db)
	})

	mdasAPI.Post("/", auth.RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return CreateMDAAPI(c, db)
	})
}

func GetMDAsAPI(c *fiber.Ctx, db *sql.DB) error {
	mdas, err := database.GetMDAs(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch MDAs"})
	}
	return c.JSON(fiber.Map{"success": true, "mdas": mdas})
}

func CreateMDAAPI(c *fiber.Ctx, db *sql.DB) error {
	var mda models.MDA
	if err := c.BodyParser(&mda); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if mda.Name == "" || mda.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name and code are required"})
	}

	if err := database.CreateMDA(db, &mda); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create MDA"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "mda": mda})
}
