package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "location-finder"

// PingResponse is the liveness payload
type PingResponse struct {
	Message string `json:"message" example:"pong"`
	Service string `json:"service" example:"location-finder"`
	Cache   string `json:"cache" example:"memory"` // active cache driver, or "disabled"
}

// handlePing godoc
// @Summary Ping health check
// @Description Liveness probe reporting the service name and active cache driver
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	driver := "disabled"
	if app.cfg.Cache.Enabled {
		driver = app.cfg.Cache.Driver
	}

	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
		Service: serviceName,
		Cache:   driver,
	})
}
