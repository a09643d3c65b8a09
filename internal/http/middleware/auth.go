// README: Firebase ID-token auth middleware and role guard for admin routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atlas/internal/infra"
)

const (
	ctxKeyUID   = "auth.uid"
	ctxKeyRole  = "auth.role"
	ctxKeyEmail = "auth.email"
)

// Auth verifies the "Authorization: Bearer <Firebase ID token>" header and
// stores the caller's UID, role and email claims in the gin context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if authenticate(c, verifier) {
			c.Next()
		}
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token,
// so signed-in callers are identified on public routes.
func OptionalAuth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if authenticate(c, verifier) {
			c.Next()
		}
	}
}

func authenticate(c *gin.Context, verifier infra.TokenVerifier) bool {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return false
	}

	token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return false
	}

	c.Set(ctxKeyUID, token.UID)
	c.Set(ctxKeyRole, token.Role())
	c.Set(ctxKeyEmail, token.Email())
	return true
}

// RequireRole rejects callers whose role claim differs from role. It must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerRole(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CallerUID returns the verified UID, or "" on unauthenticated routes.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyUID)
}

// CallerRole returns the "role" custom claim, or "" when absent.
func CallerRole(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}

// CallerEmail returns the verified "email" claim, or "" when absent.
func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxKeyEmail)
}
