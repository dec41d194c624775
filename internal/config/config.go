package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration. It is built once at startup and
// passed down by value; no package reads the environment after FromEnv.
type Config struct {
	Env  string
	Port int

	// Auth
	JWTSecret string

	// Persistence
	DatabaseURL string
	UseInMemory bool

	// Cache
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// AI
	AI AIConfig

	CORSOrigins []string
}

// AIConfig configures the model gateway.
type AIConfig struct {
	APIKey  string
	Model   string
	Mock    bool
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := Config{
		Env:           getenv("APP_ENV", "production"),
		Port:          getint("PORT", 8080),
		JWTSecret:     getenv("JWT_SECRET", "insecure-dev-secret"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		UseInMemory:   getbool("USE_IN_MEMORY_DB", true),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      time.Duration(getint("CACHE_TTL_SECONDS", 300)) * time.Second,
		AI: AIConfig{
			APIKey:  firstenv("GOOGLE_API_KEY", "GEMINI_API_KEY"),
			Model:   getenv("AI_MODEL_NAME", "gemini-2.0-flash"),
			Mock:    getbool("AI_MOCK", true),
			Timeout: time.Duration(getint("AI_TIMEOUT_SECONDS", 90)) * time.Second,
		},
		CORSOrigins: splitenv("CORS_ORIGINS", "*"),
	}

	// Mock mode is forced when no API key is available: a half-configured
	// gateway must never hit the network.
	if cfg.AI.APIKey == "" {
		cfg.AI.Mock = true
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstenv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func splitenv(key, fallback string) []string {
	raw := getenv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
