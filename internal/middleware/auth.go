package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/splitkaro/backend/internal/auth"
)

// UserIDKey is the fiber.Ctx Locals key holding the authenticated user's ID.
const UserIDKey = "userID"

// UserID returns the authenticated user's ID set by RequireAuth, or "" if
// the request is unauthenticated.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// CORS allows browser clients from the configured frontend origin.
func CORS(frontendURL string) fiber.Handler {
	origins := frontendURL
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// RequireAuth validates the Bearer token and stores the caller's user ID in
// the request context. Requests without a valid token are rejected.
func RequireAuth(jwtManager *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, auth.ErrMissingToken.Error())
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if tokenString == authHeader || tokenString == "" {
			return unauthorized(c, "invalid authorization format")
		}

		claims, err := jwtManager.Validate(tokenString)
		if err != nil {
			return unauthorized(c, auth.ErrInvalidToken.Error())
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
