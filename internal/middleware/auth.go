package middleware

import (
	"strings"

	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal is the authenticated caller, stored in request locals by
// Authenticated.
type Principal struct {
	ID      uint
	Role    string
	TokenID uuid.UUID
	User    *models.User
}

const principalKey = "principal"

// ResolveToken extracts the bearer token from the request. The Authorization
// header wins; the extra headers and the access_token parameter exist for
// clients that cannot set Authorization.
func ResolveToken(c *fiber.Ctx) string {
	candidates := []string{
		c.Get(fiber.HeaderAuthorization),
		c.Get("X-Access-Token"),
		c.Get("X-Authorization"),
		c.Query("access_token"),
		c.FormValue("access_token"),
	}
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		raw = strings.TrimPrefix(raw, "Bearer ")
		if raw != "" {
			return raw
		}
	}
	return ""
}

// Authenticated resolves the opaque token against the access_tokens table.
// A revoked token fails here with no extra state: deleting the row is the
// revocation.
func Authenticated(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := ResolveToken(c)
		if raw == "" {
			return unauthenticated(c)
		}

		token, user, err := services.FindToken(db, raw)
		if err != nil {
			return unauthenticated(c)
		}

		c.Locals(principalKey, &Principal{
			ID:      user.ID,
			Role:    user.Role,
			TokenID: token.ID,
			User:    user,
		})
		return c.Next()
	}
}

// CurrentPrincipal returns the caller set by Authenticated, or nil on
// unauthenticated routes.
func CurrentPrincipal(c *fiber.Ctx) *Principal {
	p, _ := c.Locals(principalKey).(*Principal)
	return p
}

func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		if p == nil {
			return unauthenticated(c)
		}
		if p.Role != models.RoleUser {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized: Only users can access this endpoint.",
			})
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		if p == nil {
			return unauthenticated(c)
		}
		if p.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized: Only administrators can access this endpoint.",
			})
		}
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthenticated.",
	})
}
