package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by storage.Open.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Storage        string // "file" | "redis" | "sqlite" | "memory"
	DataDir        string // directory holding one file per key (file backend)
	SQLitePath     string // database file (sqlite backend)
	SeedFile       string // optional YAML seed, empty = embedded default dataset
	ValidateOnLoad bool   // drop stored poems that break the record invariants

	// Redis (only read when Storage == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, doubles up to RedisMaxWait
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict probe endpoints to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateLimitBurst  int // mutating requests allowed in a burst per client IP
	RateLimitPerMin int // refill rate per client IP
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("POETRY_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("POETRY_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("POETRY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("POETRY_PRETTY_LOG", true),

		// Persistence
		Storage:        strings.ToLower(getenv("POETRY_STORAGE", StorageFile)),
		DataDir:        getenv("POETRY_DATA_DIR", "./data"),
		SQLitePath:     getenv("POETRY_SQLITE_PATH", "./data/poetry.db"),
		SeedFile:       getenv("POETRY_SEED_FILE", ""),
		ValidateOnLoad: mustBool("POETRY_VALIDATE_ON_LOAD", false),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("POETRY_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("POETRY_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("POETRY_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("POETRY_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("POETRY_RATE_LIMIT_PER_MIN", 60),
	}

	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	case StorageRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: unknown POETRY_STORAGE %q (want file, redis, sqlite or memory)", cfg.Storage))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("POETRY_REDIS_ADDR")
	cfg.RedisUser = getenv("POETRY_REDIS_USERNAME", "")
	cfg.RedisPassword = getenv("POETRY_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("POETRY_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("POETRY_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("POETRY_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("POETRY_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisPoolSize = getenvInt("POETRY_REDIS_POOL_SIZE", 4)
	cfg.RedisConnectTimeout = mustDuration("POETRY_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("POETRY_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisMaxWait = mustDuration("POETRY_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("POETRY_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisWarnThreshold = getenvInt("POETRY_REDIS_WARN_THRESHOLD", 3)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
