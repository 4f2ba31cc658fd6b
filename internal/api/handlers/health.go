package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/session"
	"github.com/playmatatu/golfcard/internal/ws"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(sessions *session.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"service":  "golfcard-api",
			"version":  version,
			"uptime":   time.Since(startTime).String(),
			"sessions": sessions.Count(),
			"sockets":  hub.Count(),
		})
	}
}
