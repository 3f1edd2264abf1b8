package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

// RequireLogin rejects anonymous requests with 403.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: login required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects everyone but admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireGuest sends logged-in users back to the home page.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
