package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/auth"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/pkg/response"
)

const principalKey = "principal"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	resolver *auth.Resolver
}

// NewAuthMiddleware creates a new auth middleware with Zitadel JWKS verification
func NewAuthMiddleware(verifier auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{resolver: auth.NewResolver(verifier, "")}
}

// NewAuthMiddlewareWithFallback creates auth middleware with both JWKS and legacy HMAC support
func NewAuthMiddlewareWithFallback(verifier auth.TokenVerifier, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{resolver: auth.NewResolver(verifier, jwtSecret)}
}

// NewLegacyAuthMiddleware creates auth middleware using only HMAC signing (for testing/dev)
func NewLegacyAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{resolver: auth.NewResolver(nil, jwtSecret)}
}

// Authenticate resolves the bearer token into the request principal
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization header")
		}

		token, ok := auth.BearerToken(authHeader)
		if !ok {
			return response.Unauthorized(c, "Invalid authorization header format")
		}

		p, err := m.resolver.Resolve(token)
		switch {
		case errors.Is(err, auth.ErrNotConfigured):
			return response.Unauthorized(c, "Authentication not configured")
		case err != nil:
			return response.Unauthorized(c, "Invalid or expired token")
		}

		setPrincipal(c, p)
		return c.Next()
	}
}

func setPrincipal(c *fiber.Ctx, p model.Principal) {
	c.Locals(principalKey, p)
}

// GetPrincipal returns the authenticated caller every record operation is scoped to.
// It is the zero Principal on routes without authentication.
func GetPrincipal(c *fiber.Ctx) model.Principal {
	p, _ := c.Locals(principalKey).(model.Principal)
	return p
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) string {
	return GetPrincipal(c).UserID
}
