package middleware

import (
	"certificates-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware restricts a route to admin accounts. Must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("userRole")
		if !ok || role != "admin" {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
