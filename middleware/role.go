package middleware

import (
	"net/http"

	"servicefinder/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose token role is not one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "this endpoint requires a "+roles[0]+" account")
	}
}
