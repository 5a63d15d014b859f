package middleware

import (
	"net/http"
	"strings"

	"servicefinder/models"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
	ContextName   = "name"
)

// JWTAuthMiddleware accepts tokens issued by the identity service and stores
// the caller's identity in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextName, claims.Name)
		c.Next()
	}
}

// Identity returns the authenticated caller. The zero Identity means the
// request did not pass through JWTAuthMiddleware.
func Identity(c *gin.Context) models.Identity {
	return models.Identity{
		ID:   c.GetString(ContextUserID),
		Name: c.GetString(ContextName),
		Role: c.GetString(ContextRole),
	}
}
