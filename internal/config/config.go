package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string
	WebRoot     string

	// Card
	CardContentPath string
	VoucherStore    string

	// Sessions
	SessionTimeoutMin int
	SessionTickHz     int
	MaxSessions       int

	// Course
	Windmill bool
	Props    bool

	// Security
	JWTSecret         string
	UnlockTokenTTLMin int
	UnlockCodes       []string
	UnlockCodeHashes  []string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		WebRoot:     getEnv("WEB_ROOT", "web"),

		// Card
		CardContentPath: getEnv("CARD_CONTENT_PATH", ""),
		VoucherStore:    getEnv("VOUCHER_STORE", "memory"),

		// Sessions
		SessionTimeoutMin: getEnvInt("SESSION_TIMEOUT_MINUTES", 30),
		SessionTickHz:     getEnvInt("SESSION_TICK_HZ", 30),
		MaxSessions:       getEnvInt("MAX_SESSIONS", 500),

		// Course
		Windmill: getEnvBool("GOLF_WINDMILL", true),
		Props:    getEnvBool("GOLF_PROPS", true),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		UnlockTokenTTLMin: getEnvInt("UNLOCK_TOKEN_TTL_MINUTES", 7*24*60),
		UnlockCodes:       getEnvList("UNLOCK_CODES", []string{"K+D", "KD"}),
		UnlockCodeHashes:  getEnvList("UNLOCK_CODE_HASHES", nil),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
