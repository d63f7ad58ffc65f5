package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterHealth(router *gin.RouterGroup) {
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, "test ok")
	})
}
