package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/presentation/http/middleware"
	"github.com/sangkips/warehouse-api/pkg/apperror"
)

// GetUser extracts the signed-in operator from the Gin context
func GetUser(c *gin.Context) (entity.User, bool) {
	val, exists := c.Get(middleware.UserKey)
	if !exists {
		return entity.User{}, false
	}
	user, ok := val.(entity.User)
	return user, ok
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDKey)
}

// intParam parses a non-negative integer path parameter
func intParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 0 {
		return 0, apperror.NewBadRequestError("Invalid " + name)
	}
	return v, nil
}
