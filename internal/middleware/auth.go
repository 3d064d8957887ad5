package middleware

import (
	"net/http"
	"strings"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/auth"
	"github.com/dannyallport-cain/we-date/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token, sets user_id/email in the gin
// context and touches the user's last_active timestamp. The touch is
// best-effort; a failed write never rejects the request.
func AuthRequired(cfg *config.JWTConfig, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header", "code": "UNAUTHORIZED"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format", "code": "UNAUTHORIZED"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token", "code": "UNAUTHORIZED"})
			return
		}
		_ = users.TouchLastActive(c.Request.Context(), claims.UserID)
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID (requires AuthRequired).
func GetUserID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	if v == nil {
		return 0
	}
	id, _ := v.(uint)
	return id
}
