package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/pkg/response"
)

// Identity headers set by Traefik ForwardAuth from /auth/verify
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
)

// GatewayAuthMiddleware reads the principal from the identity headers
func GatewayAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		if userID == "" {
			return response.Unauthorized(c, "Missing user identity headers")
		}

		setPrincipal(c, model.Principal{
			UserID: userID,
			Email:  c.Get(HeaderUserEmail),
			Name:   c.Get(HeaderUserName),
		})
		return c.Next()
	}
}
