package auth

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, db *sql.DB) {
	authAPI := app.Group("/api/auth")

	// Public routes
	authAPI.Post("/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, db)
	})
	authAPI.Post("/logout", LogoutAPI)

	// Protected routes
	authAPI.Use(AuthMiddleware)
	authAPI.Get("/me", func(c *fiber.Ctx) error {
		return MeAPI(c, db)
	})
	authAPI.Post("/change-password", func(c *fiber.Ctx) error {
		return ChangePasswordAPI(c, db)
	})
}

// AuthMiddleware validates the JWT and sets the caller's identity and roles
// on the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_roles", claims.Roles)
	return c.Next()
}

// RequireRoles gates a route group to callers holding at least one of the
// named roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles, _ := c.Locals("user_roles").([]string)
		for _, have := range userRoles {
			for _, want := range roles {
				if have == want {
					return c.Next()
				}
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

// UserID returns the authenticated caller's id from the request context.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
