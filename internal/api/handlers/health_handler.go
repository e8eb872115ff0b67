package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health responds with the impersonated gateway's health shape.
func (e *Env) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"version":     e.Cfg.FakeVersion,
		"uptime":      e.Uptime(),
		"connections": e.Hub.Count(),
	})
}
