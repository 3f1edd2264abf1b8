package utils

import (
	"github.com/gin-gonic/gin"
	"time"
)

// RenderHTML renders page with the current user, pending flashes and the
// current year added to data.
func RenderHTML(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["current_user"] = CurrentUser(c)
	data["flashes"] = Flashes(c)
	data["year"] = time.Now().Year()
	c.HTML(status, page, data)
}

// RenderError renders the generic error page.
func RenderError(c *gin.Context, status int, message string) {
	RenderHTML(c, status, "error.html", gin.H{
		"title":   "Error",
		"status":  status,
		"message": message,
	})
	c.Abort()
}
