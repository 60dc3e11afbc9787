package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr     string
	LogLevel slog.Level

	// SubmitLatency is how long the simulated registration backend takes.
	SubmitLatency time.Duration
	// SubmitTimeout bounds one backend call. A form left loading longer than
	// this, plus a grace period, is released.
	SubmitTimeout time.Duration

	// SessionSigningKey signs form tokens. Empty means a random key is
	// generated at startup, so tokens do not survive a restart.
	SessionSigningKey string
	SessionTTL        time.Duration

	// DraftSealKey encrypts drafts written to Redis.
	DraftSealKey string

	// SecureCookies sets the Secure attribute on the form cookie.
	SecureCookies bool

	Redis RedisConfig
}

// RedisConfig configures the optional Redis draft store. An empty URL keeps
// drafts in process memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Defaults for values not set in the environment.
const (
	DefaultAddr          = ":8080"
	DefaultSubmitLatency = 700 * time.Millisecond
	DefaultSubmitTimeout = 30 * time.Second
	DefaultSessionTTL    = 30 * time.Minute
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Server{
		Addr:              get("SIGNUP_ADDR", DefaultAddr),
		SessionSigningKey: get("SIGNUP_SESSION_KEY", ""),
		DraftSealKey:      get("SIGNUP_DRAFT_KEY", ""),
		SecureCookies:     get("SIGNUP_SECURE_COOKIES", "false") == "true",
		Redis: RedisConfig{
			URL: get("REDIS_URL", ""),
		},
	}

	var err error
	if cfg.LogLevel, err = parseLevel(get("SIGNUP_LOG_LEVEL", "info")); err != nil {
		return Server{}, err
	}
	if cfg.SubmitLatency, err = parseDuration("SIGNUP_SUBMIT_LATENCY", get("SIGNUP_SUBMIT_LATENCY", ""), DefaultSubmitLatency); err != nil {
		return Server{}, err
	}
	if cfg.SubmitTimeout, err = parseDuration("SIGNUP_SUBMIT_TIMEOUT", get("SIGNUP_SUBMIT_TIMEOUT", ""), DefaultSubmitTimeout); err != nil {
		return Server{}, err
	}
	if cfg.SubmitTimeout <= 0 {
		return Server{}, fmt.Errorf("SIGNUP_SUBMIT_TIMEOUT must be positive")
	}
	if cfg.SessionTTL, err = parseDuration("SIGNUP_SESSION_TTL", get("SIGNUP_SESSION_TTL", ""), DefaultSessionTTL); err != nil {
		return Server{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Server{}, fmt.Errorf("SIGNUP_SESSION_TTL must be positive")
	}

	if cfg.Redis.PoolSize, err = parseInt("REDIS_POOL_SIZE", get("REDIS_POOL_SIZE", ""), 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = parseInt("REDIS_MIN_IDLE_CONNS", get("REDIS_MIN_IDLE_CONNS", ""), 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = parseDuration("REDIS_DIAL_TIMEOUT", get("REDIS_DIAL_TIMEOUT", ""), 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = parseDuration("REDIS_READ_TIMEOUT", get("REDIS_READ_TIMEOUT", ""), 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = parseDuration("REDIS_WRITE_TIMEOUT", get("REDIS_WRITE_TIMEOUT", ""), 3*time.Second); err != nil {
		return Server{}, err
	}

	if cfg.Redis.URL != "" && cfg.DraftSealKey == "" {
		return Server{}, fmt.Errorf("SIGNUP_DRAFT_KEY is required when REDIS_URL is set")
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("SIGNUP_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func parseDuration(key, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseInt(key, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
