package main

import (
	"log"
	"time"

	"github.com/Einzelgaanger/CPF/app/config"
	"github.com/Einzelgaanger/CPF/app/database"
	"github.com/Einzelgaanger/CPF/app/routes/accounts"
	"github.com/Einzelgaanger/CPF/app/routes/auth"
	"github.com/Einzelgaanger/CPF/app/routes/bills"
	"github.com/Einzelgaanger/CPF/app/routes/dashboard"
	"github.com/Einzelgaanger/CPF/app/routes/mdas"
	"github.com/Einzelgaanger/CPF/app/routes/waterfall"
	"github.com/Einzelgaanger/CPF/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler keeps every error response in the API envelope shape
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Set global time zone to East Africa Time
	loc, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		log.Printf("Warning: Failed to load Africa/Nairobi location, falling back to UTC+3: %v", err)
		time.Local = time.FixedZone("EAT", 3*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background reconciliation sweep
	services.StartScheduler(db)

	// The waterfall engine gets its storage handle and rate defaults
	// injected here; nothing inside it reads global state.
	engine := services.NewWaterfallEngine(db, services.DefaultRates())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CPF Receivables Platform",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Routes
	auth.SetupAuthRoutes(app, db)
	waterfall.SetupWaterfallRoutes(app, db, engine)
	bills.SetupBillsRoutes(app, db)
	accounts.SetupAccountsRoutes(app, db)
	mdas.SetupMDAsRoutes(app, db)
	dashboard.SetupDashboardRoutes(app, db)

	log.Println("Starting CPF platform on :3000")
	if err := app.Listen(":3000"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
