package api

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/api/handlers"
	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/card"
	"github.com/playmatatu/golfcard/internal/config"
	"github.com/playmatatu/golfcard/internal/middleware"
	"github.com/playmatatu/golfcard/internal/session"
	"github.com/playmatatu/golfcard/internal/ws"
)

// Services are the long-lived components the routes are wired to.
type Services struct {
	Sessions *session.Manager
	Hub      *ws.Hub
	Card     *card.Service
	Codes    *auth.CodeChecker
	Issuer   *auth.Issuer
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, s Services) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(s.Sessions, s.Hub))

		v1.GET("/card/teaser", handlers.CardTeaser(s.Card))
		v1.POST("/unlock", handlers.Unlock(s.Codes, s.Issuer, s.Sessions, cfg.Environment == "production"))

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handlers.CreateSession(s.Sessions))
			sessions.GET("/:token", handlers.GetSession(s.Sessions))
			sessions.GET("/:token/ws", middleware.WebSocketCORSCheck(cfg), ws.Handler(s.Hub, s.Sessions))
		}

		unlocked := v1.Group("/card", auth.RequireUnlock(s.Issuer))
		{
			unlocked.GET("", handlers.GetCard(s.Card))
			unlocked.POST("/vouchers/:slug/redeem", handlers.RedeemVoucher(s.Card))
		}
	}

	index := filepath.Join(cfg.WebRoot, "index.html")
	if _, err := os.Stat(index); err == nil {
		router.StaticFile("/", index)
		router.Static("/static", cfg.WebRoot)
	} else {
		log.Printf("[WEB] %s not found; web shell disabled", index)
	}
}
