package middleware

import (
	"net/http"

	"github.com/XyvinTech/councelling-backend/domain"

	"github.com/gin-gonic/gin"
)

// role checking middleware
func AdminOnly() gin.HandlerFunc {
	return requireRole(domain.RoleAdmin, "Admins only")
}

func CounsellorOnly() gin.HandlerFunc {
	return requireRole(domain.RoleCounsellor, "Counsellors only")
}

func StudentOnly() gin.HandlerFunc {
	return requireRole(domain.RoleStudent, "Students only")
}

func requireRole(required, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != required {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": message,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
