package controller

import (
	"cafeapi/web"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home serves the landing page.
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML())
}
