package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopapi/internal/auth"
)

// ClaimsKey is the Gin context key holding the verified auth.Claims.
// Identity attached here lives only for the current request.
const ClaimsKey = "authClaims"

// AuthGuard validates the bearer token and, when required roles are given,
// checks them after authentication succeeds. Missing and invalid tokens are
// both 401 with distinct messages; an insufficient role is 403.
func AuthGuard(secret string, requiredRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, err := auth.VerifyToken(parts[1], secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if !claims.HasRole(requiredRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func AdminGuard(secret string) gin.HandlerFunc {
	return AuthGuard(secret, auth.RoleAdmin)
}

// ClaimsFrom returns the identity attached by AuthGuard, if any.
func ClaimsFrom(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}
