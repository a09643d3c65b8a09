// README: Tests for Firebase auth middleware, role guard, rate limiting and recovery.
package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"atlas/internal/http/middleware"
	"atlas/internal/infra"
)

// stubVerifier is a test double for infra.TokenVerifier.
type stubVerifier struct {
	token *infra.IDToken
	err   error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.IDToken, error) {
	return s.token, s.err
}

func newTestRouter(verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(verifier))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": middleware.CallerUID(c), "role": middleware.CallerRole(c)})
	})
	r.GET("/admin", middleware.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func serve(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.IDToken{UID: "user1"}})
	if w := serve(r, "/test", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.IDToken{UID: "user1"}})
	if w := serve(r, "/test", "Token sometoken"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_VerifierError(t *testing.T) {
	r := newTestRouter(&stubVerifier{err: errors.New("bad token")})
	if w := serve(r, "/test", "Bearer invalidtoken"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ValidToken_UIDAndRolePopulated(t *testing.T) {
	token := &infra.IDToken{UID: "ops42", Claims: map[string]interface{}{"role": "admin"}}
	r := newTestRouter(&stubVerifier{token: token})

	w := serve(r, "/test", "Bearer validtoken")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"uid":"ops42"`) || !strings.Contains(body, `"role":"admin"`) {
		t.Errorf("expected uid and role in body, got %s", body)
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newRouter := func(v infra.TokenVerifier) *gin.Engine {
		r := gin.New()
		r.GET("/public", middleware.OptionalAuth(v), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"uid": middleware.CallerUID(c), "email": middleware.CallerEmail(c)})
		})
		return r
	}

	token := &infra.IDToken{UID: "u7", Claims: map[string]interface{}{"email": "kai@example.com"}}
	r := newRouter(&stubVerifier{token: token})
	if w := serve(r, "/public", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"uid":""`) {
		t.Fatalf("expected anonymous pass-through, got %d %s", w.Code, w.Body.String())
	}
	w := serve(r, "/public", "Bearer ok")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"uid":"u7"`) || !strings.Contains(w.Body.String(), `"email":"kai@example.com"`) {
		t.Fatalf("expected caller identified, got %d %s", w.Code, w.Body.String())
	}

	bad := newRouter(&stubVerifier{err: errors.New("expired")})
	if w := serve(bad, "/public", "Bearer nope"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	admin := &infra.IDToken{UID: "a", Claims: map[string]interface{}{"role": "admin"}}
	if w := serve(newTestRouter(&stubVerifier{token: admin}), "/admin", "Bearer t"); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for admin, got %d", w.Code)
	}

	user := &infra.IDToken{UID: "u", Claims: map[string]interface{}{}}
	if w := serve(newTestRouter(&stubVerifier{token: user}), "/admin", "Bearer t"); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 without role, got %d", w.Code)
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewRateLimiter(0.001, 2).Limit())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("expected other IP to pass, got %d", code)
	}
}

func TestRecoveryAndLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.Logging(logger), middleware.Recovery(logger))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, "/boom", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "panic recovered") || !strings.Contains(out, `"status":500`) {
		t.Fatalf("expected panic and request log lines, got %s", out)
	}
}
