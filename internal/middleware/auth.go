package middleware

import (
	"net/http"
	"strings"

	"rental_erp/internal/models"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
)

// Auth validates the Bearer token and stores the caller's identity on the
// request context.
func Auth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, claims.UserType)
		c.Next()
	}
}

// RequireStaff rejects plain customer accounts. Admin, manager and agent
// users pass.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString(ContextUserType)
		switch userType {
		case models.UserTypeAdmin, models.UserTypeManager, models.UserTypeAgent:
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
		}
	}
}

// RequireAdmin restricts a route to administrators.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserType) != models.UserTypeAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
