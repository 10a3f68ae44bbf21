package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// APIConfig configures the Posts Service (cmd/api).
type APIConfig struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	RabbitMQURL    string
	AllowedOrigins []string
}

// WebConfig configures the single-page client (cmd/web).
type WebConfig struct {
	Port           string
	APIURL         string
	SessionSecret  string
	CookieSecure   bool
	SessionIdleTTL time.Duration
	MaxSessions    int
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Default().Warn("loading .env failed", "error", err)
	}
}

func LoadAPI() *APIConfig {
	loadDotEnv()

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	dsn := getEnv("DATABASE_URL", "")
	if dsn == "" && driver == "sqlite" {
		dsn = "data/posts.db"
	}

	return &APIConfig{
		Port:           getEnv("PORT", "4000"),
		DBDriver:       driver,
		DatabaseURL:    dsn,
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func LoadWeb() (*WebConfig, error) {
	loadDotEnv()

	cfg := &WebConfig{
		Port:          getEnv("PORT", "3000"),
		APIURL:        strings.TrimRight(getEnv("POSTS_API_URL", "http://localhost:4000"), "/"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET is required")
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_IDLE_TTL", "12h"))
	if err != nil {
		return nil, errors.New("config: invalid SESSION_IDLE_TTL: " + err.Error())
	}
	cfg.SessionIdleTTL = ttl

	maxSessions, err := strconv.Atoi(getEnv("SESSION_MAX", "10000"))
	if err != nil || maxSessions < 0 {
		return nil, errors.New("config: invalid SESSION_MAX")
	}
	cfg.MaxSessions = maxSessions

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
