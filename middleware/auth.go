package middleware

import (
	"coursehub/catalog"
	"coursehub/config"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware requires a valid token and stashes the caller's identity in
// locals for downstream handlers.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userID", claims.UserID)
		c.Locals("role", catalog.ParseRole(claims.Role))
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a token is present but
// lets anonymous requests through. Search and course detail depend on this:
// the visibility gate, not the transport, decides what they see.
func OptionalAuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("role", catalog.RoleAnonymous)
		if claims, err := utils.ExtractClaimsFromToken(c, cfg); err == nil {
			c.Locals("userID", claims.UserID)
			c.Locals("role", catalog.ParseRole(claims.Role))
		}
		return c.Next()
	}
}

// RequireRoles gates a route to the listed roles. Must run after
// AuthMiddleware.
func RequireRoles(roles ...catalog.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(catalog.Role)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient permissions")
	}
}

// UserID returns the authenticated caller's id, 0 when anonymous.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// CallerRole returns the resolved role, anonymous when unauthenticated.
func CallerRole(c *fiber.Ctx) catalog.Role {
	role, _ := c.Locals("role").(catalog.Role)
	return role
}
