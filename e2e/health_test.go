package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/genaimarketing/api/internal/auth"
	"github.com/genaimarketing/api/internal/middleware"
)

func TestBaseURL(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodGet, "/", "", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if _, ok := body["timestamp"]; !ok {
		t.Error("expected 'timestamp' field in response")
	}
}

func TestSwaggerDoc(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodGet, "/swagger/doc.json", "", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	paths, ok := body["paths"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected 'paths' object, got %T", body["paths"])
	}
	for _, route := range []string{
		"/api/campaigns",
		"/api/assets/{id}/creative",
		"/api/generations/start",
		"/api/generations/cancel/{jobId}",
	} {
		if _, ok := paths[route]; !ok {
			t.Errorf("expected %s in swagger paths", route)
		}
	}
}

func TestHealth(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodGet, "/health", "", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	services, ok := body["services"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected 'services' object in response, got %v", body["services"])
	}
	if services["store"] != "memory" {
		t.Errorf("expected store 'memory', got %v", services["store"])
	}
}

func TestAuthVerify(t *testing.T) {
	ta := setupApp(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.LegacyClaims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + generateToken(t), http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"valid", "Bearer " + generateToken(t), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			resp, err := doRequest(ta.app, http.MethodGet, "/auth/verify", "", headers)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			assertStatus(t, resp, tt.status)

			if tt.status != http.StatusOK {
				return
			}
			if got := resp.Header.Get(middleware.HeaderUserID); got != testUserID {
				t.Errorf("expected %s %q, got %q", middleware.HeaderUserID, testUserID, got)
			}
			if resp.Header.Get(middleware.HeaderUserEmail) == "" {
				t.Errorf("expected %s header to be set", middleware.HeaderUserEmail)
			}
			if resp.Header.Get(middleware.HeaderUserName) != "Test User" {
				t.Errorf("expected %s header to be set", middleware.HeaderUserName)
			}
		})
	}
}

func TestGatewayAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", middleware.GatewayAuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(middleware.GetPrincipal(c))
	})

	resp, err := doRequest(app, http.MethodGet, "/whoami", "", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusUnauthorized)

	resp, err = doRequest(app, http.MethodGet, "/whoami", "", map[string]string{
		middleware.HeaderUserID:    "gateway-user",
		middleware.HeaderUserEmail: "gw@example.com",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["userId"] != "gateway-user" || body["email"] != "gw@example.com" {
		t.Errorf("unexpected principal %v", body)
	}
}
