package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/infrastructure/identity"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/response"
	"github.com/sangkips/warehouse-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

// AuthMiddleware validates the session JWT and puts the operator on the request context
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		claims, err := jwtManager.ValidateSessionToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user := entity.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		}
		ctx := identity.WithSession(c.Request.Context(), identity.Session{
			User:        user,
			RemoteToken: claims.RemoteToken,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)

		c.Next()
	}
}
