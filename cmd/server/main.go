package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/api"
	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/card"
	"github.com/playmatatu/golfcard/internal/config"
	"github.com/playmatatu/golfcard/internal/database"
	"github.com/playmatatu/golfcard/internal/golf"
	"github.com/playmatatu/golfcard/internal/migrations"
	"github.com/playmatatu/golfcard/internal/redis"
	"github.com/playmatatu/golfcard/internal/session"
	"github.com/playmatatu/golfcard/internal/ws"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Initialize configuration (loads .env when present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database is optional; vouchers can live in memory or redis
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		defer db.Close()
		if cfg.MigrateOnStart {
			log.Println("[MIGRATE] Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
	}

	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	content, err := card.Load(cfg.CardContentPath)
	if err != nil {
		log.Fatalf("Failed to load card content: %v", err)
	}
	store, err := card.NewStore(cfg.VoucherStore, db, rdb)
	if err != nil {
		log.Fatalf("Failed to open voucher store: %v", err)
	}
	log.Printf("[CARD] Card for %s, %d vouchers in %s store", content.HerName, len(content.Vouchers), cfg.VoucherStore)

	codes, err := auth.NewCodeChecker(cfg.UnlockCodes, cfg.UnlockCodeHashes, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to prepare unlock codes: %v", err)
	}
	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.UnlockTokenTTLMin)*time.Minute)

	features := golf.AllFeatures()
	features.Windmill = cfg.Windmill
	features.Props = cfg.Props

	sessions := session.NewManager(ctx, rdb, issuer, session.Options{
		TickHz:      cfg.SessionTickHz,
		IdleTimeout: time.Duration(cfg.SessionTimeoutMin) * time.Minute,
		MaxSessions: cfg.MaxSessions,
		Tuning:      golf.DefaultTuning(),
		Features:    features,
	})
	sessions.StartSweeper(ctx, time.Minute)

	hub := ws.NewHub()
	go hub.Run(ctx.Done())
	ws.StartEventSubscriber(ctx, rdb, hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api.SetupRoutes(router, cfg, api.Services{
		Sessions: sessions,
		Hub:      hub,
		Card:     card.NewService(content, store),
		Codes:    codes,
		Issuer:   issuer,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting card server on port %s", port)
	go func() {
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
}
