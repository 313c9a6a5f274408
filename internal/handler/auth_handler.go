package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/auth"
	"github.com/genaimarketing/api/internal/middleware"
)

// AuthHandler answers ForwardAuth checks for the API gateway
type AuthHandler struct {
	resolver *auth.Resolver
}

func NewAuthHandler(verifier auth.TokenVerifier, jwtSecret string) *AuthHandler {
	return &AuthHandler{resolver: auth.NewResolver(verifier, jwtSecret)}
}

// Verify handles GET /auth/verify, called by Traefik ForwardAuth.
// Returns 200 with the identity headers on success, 401 on failure.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	p, err := h.resolver.Resolve(token)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	c.Set(middleware.HeaderUserID, p.UserID)
	c.Set(middleware.HeaderUserEmail, p.Email)
	if p.Name != "" {
		c.Set(middleware.HeaderUserName, p.Name)
	}
	return c.SendStatus(fiber.StatusOK)
}
