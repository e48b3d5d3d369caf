package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr string
}

type SessionConfig struct {
	Backend   string // "memory" or "redis"
	RedisURL  string
	TTLSec    int
	JWTSecret []byte
}

// BreakerConfig tunes the circuit breaker guarding upstream calls.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

type AppConfig struct {
	ServiceName    string
	LogLevel       string
	HTTP           HTTPConfig
	UpstreamBase   string
	Session        SessionConfig
	Breaker        BreakerConfig
	CacheTTLSec    int
	RatingScaleMax int // 5 or 10, see internal/ratings
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	cfg := AppConfig{
		ServiceName:  strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		LogLevel:     strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		UpstreamBase: strings.TrimSpace(os.Getenv("UPSTREAM_BASE_URL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		Session: SessionConfig{
			Backend:   strings.TrimSpace(os.Getenv("SESSION_BACKEND")),
			RedisURL:  strings.TrimSpace(os.Getenv("REDIS_URL")),
			TTLSec:    intEnv("SESSION_TTL_SEC", 86400),
			JWTSecret: []byte(strings.TrimSpace(os.Getenv("JWT_SECRET"))),
		},
		Breaker: BreakerConfig{
			MaxRequests:      uint32(intEnv("CB_MAX_REQUESTS", 5)),
			Interval:         durationEnv("CB_INTERVAL", 60*time.Second),
			Timeout:          durationEnv("CB_TIMEOUT", 30*time.Second),
			FailureThreshold: uint32(intEnv("CB_FAILURE_THRESHOLD", 5)),
		},
		CacheTTLSec:    intEnv("CACHE_TTL_SEC", 60),
		RatingScaleMax: intEnv("RATING_SCALE", 5),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "criticloud"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.UpstreamBase == "" {
		return AppConfig{}, errors.New("UPSTREAM_BASE_URL is required")
	}
	if len(cfg.Session.JWTSecret) == 0 {
		return AppConfig{}, errors.New("JWT_SECRET is required")
	}
	switch cfg.Session.Backend {
	case "":
		cfg.Session.Backend = "memory"
	case "memory":
	case "redis":
		if cfg.Session.RedisURL == "" {
			return AppConfig{}, errors.New("REDIS_URL is required when SESSION_BACKEND=redis")
		}
	default:
		return AppConfig{}, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}
	if cfg.RatingScaleMax != 5 && cfg.RatingScaleMax != 10 {
		return AppConfig{}, fmt.Errorf("RATING_SCALE must be 5 or 10, got %d", cfg.RatingScaleMax)
	}
	return cfg, nil
}

func intEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func CORSOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
