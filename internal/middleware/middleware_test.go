package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/config"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type stubAuth struct {
	admin *models.AdminUser
	err   error
	token string
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*models.AdminUser, error) {
	s.token = token
	return s.admin, s.err
}

func newAuthRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/admin", AdminAuthMiddleware(auth), func(c *gin.Context) {
		admin, _ := AdminFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": admin.Username})
	})
	return r
}

func TestAdminAuthMiddlewareFailureCodes(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
		status int
		code   string
	}{
		{"missing header", "", nil, http.StatusUnauthorized, CodeMissingHeader},
		{"basic scheme", "Basic abc", nil, http.StatusUnauthorized, CodeMalformedHeader},
		{"empty token", "Bearer   ", nil, http.StatusUnauthorized, CodeEmptyToken},
		{"expired", "Bearer tok", apperrors.Auth("token_expired", "Token has expired"), http.StatusUnauthorized, "token_expired"},
		{"admin gone", "Bearer tok", apperrors.Auth("admin_not_found", "Unauthorized"), http.StatusUnauthorized, "admin_not_found"},
		{"secret missing", "Bearer tok", apperrors.Config(apperrors.CodeSecretUnconfigured, "no secret"), http.StatusInternalServerError, apperrors.CodeSecretUnconfigured},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthRouter(&stubAuth{err: tc.err})
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["code"] != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body["code"])
			}
		})
	}
}

func TestAdminAuthMiddlewareAccepts(t *testing.T) {
	auth := &stubAuth{admin: &models.AdminUser{Username: "root"}}
	r := newAuthRouter(auth)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if auth.token != "good-token" {
		t.Fatalf("expected token to be passed through, got %q", auth.token)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Server: config.ServerConfig{AllowedHosts: []string{"https://shop.example.com"}}}
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin for unknown origin, got %q", got)
	}
}
