package middleware

import (
	"strings"

	"bms-backend/internal/core/domain"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LocalEmail is the fiber.Locals key holding the authenticated email
const LocalEmail = "email"

// extractToken reads the Bearer token from the Authorization header. The
// access_token cookie is used only when no header is sent.
func extractToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}
		return ""
	}
	return c.Cookies("access_token")
}

// RequireAuth rejects requests without a valid access token
func RequireAuth(access *services.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := access.RequireAuthenticated(extractToken(c))
		if err != nil {
			return response.FromError(c, err)
		}

		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// RequireRole rejects callers that do not hold exactly role. Must run
// after RequireAuth.
func RequireRole(access *services.AccessService, role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := CurrentEmail(c)
		if email == "" {
			return response.FromError(c, domain.ErrTokenMissing)
		}

		if err := access.RequireRole(c.UserContext(), email, role); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// AdminOnly allows only admins
func AdminOnly(access *services.AccessService) fiber.Handler {
	return RequireRole(access, domain.RoleAdmin)
}

// MemberOnly allows only members
func MemberOnly(access *services.AccessService) fiber.Handler {
	return RequireRole(access, domain.RoleMember)
}

// CurrentEmail returns the authenticated email, or "" on public routes
func CurrentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}
