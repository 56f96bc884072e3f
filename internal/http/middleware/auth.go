package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/auth"
)

const (
	claimsKey = "claims"
	// userIDKey carries the authenticated user ID as a string for logging
	// and per-user rate limiting.
	userIDKey = "userID"
)

// TokenParser verifies a bearer token. *auth.Issuer satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate requires "Authorization: Bearer <token>".
//
//   - missing token → 401 {"error":"Access token required"}
//   - bad signature, wrong algorithm or expired → 403 {"error":"Invalid or expired token"}
//
// On success the claims are available through ClaimsFrom.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Set(userIDKey, strconv.FormatUint(uint64(claims.ID), 10))
		c.Next()
	}
}

// RequireAdmin lets only admin claims through. It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

func bearerToken(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
