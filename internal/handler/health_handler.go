package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "achievement-board-api"

// Version is stamped at build time via -ldflags
var Version = "dev"

// Root godoc
// @Summary      Service info
// @Description  Returns the service name and version
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"version": Version,
		"status":  "ok",
	})
}

// Healthz godoc
// @Summary      Health check
// @Description  Liveness probe endpoint
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
