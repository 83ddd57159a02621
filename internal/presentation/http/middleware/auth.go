package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/utils"
)

// Context keys set by AdminAuth
const (
	ContextAdminID    = "admin_id"
	ContextAdminEmail = "admin_email"
)

// AdminAuth authenticates the bearer token and stores the admin it was
// issued to. With enabled=false every request passes through untouched and
// handlers fall back to the admin id carried by the request.
func AdminAuth(jwtManager *utils.JWTManager, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)

		c.Next()
	}
}

// AuthenticatedAdmin returns the admin id placed in the context by AdminAuth
func AuthenticatedAdmin(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextAdminID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
