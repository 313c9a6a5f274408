package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/genaimarketing/api/internal/model"
)

// LegacyIssuer is the issuer of HMAC tokens signed by the API itself
const LegacyIssuer = "genaimarketing-api"

var ErrMissingSubject = errors.New("token has no user id")

// LegacyClaims are the claims of HMAC-signed tokens
type LegacyClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *LegacyClaims) Principal() model.Principal {
	return model.Principal{UserID: c.UserID, Email: c.Email, Name: c.Name}
}

// IssueLegacyToken signs an HMAC token for p. A zero ttl issues a token without expiry.
func IssueLegacyToken(p model.Principal, secret string, ttl time.Duration) (string, error) {
	if p.UserID == "" {
		return "", ErrMissingSubject
	}

	claims := LegacyClaims{
		UserID: p.UserID,
		Email:  p.Email,
		Name:   p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   LegacyIssuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateLegacyToken validates a token using HMAC signing
func ValidateLegacyToken(tokenString, secret string) (*LegacyClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LegacyClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*LegacyClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
