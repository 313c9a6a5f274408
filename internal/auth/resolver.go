package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/genaimarketing/api/internal/model"
)

var (
	ErrUnauthenticated = errors.New("invalid or expired token")
	ErrNotConfigured   = errors.New("authentication not configured")
)

// Resolver turns a bearer token into the principal it was issued to. JWKS verification is
// tried first; the legacy secret, when set, is the fallback.
type Resolver struct {
	verifier     TokenVerifier
	legacySecret string
}

func NewResolver(verifier TokenVerifier, legacySecret string) *Resolver {
	return &Resolver{verifier: verifier, legacySecret: legacySecret}
}

func (r *Resolver) Resolve(tokenString string) (model.Principal, error) {
	if r.verifier == nil && r.legacySecret == "" {
		return model.Principal{}, ErrNotConfigured
	}

	if r.verifier != nil {
		claims, err := r.verifier.Validate(tokenString)
		if err == nil {
			return claims.Principal(), nil
		}
		if r.legacySecret == "" {
			return model.Principal{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
	}

	claims, err := ValidateLegacyToken(tokenString, r.legacySecret)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return claims.Principal(), nil
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return token, true
}
