package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/session"
)

type createSessionRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ratio  float64 `json:"ratio"`
}

// CreateSession starts a golf session for the caller's viewport. The
// viewport may be empty; the client sends a resize once it is laid out.
func CreateSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
				return
			}
		}
		if req.Ratio <= 0 {
			req.Ratio = 1
		}

		s, err := sessions.Create(req.Width, req.Height, req.Ratio)
		if errors.Is(err, session.ErrBadInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, session.ErrTooMany) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many sessions, try again later"})
			return
		}
		if err != nil {
			log.Printf("[SESSION] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token":  s.Token,
			"ws_url": "/api/v1/sessions/" + s.Token + "/ws",
		})
	}
}

// GetSession returns the session's snapshot, live or from redis.
func GetSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := sessions.Snapshot(c.Request.Context(), c.Param("token"))
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err != nil {
			log.Printf("[SESSION] snapshot failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
