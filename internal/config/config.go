package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline set by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Favorites store
	StoreBackend string        // "redis" | "mongo" | "memory"
	StoreTimeout time.Duration // bound on every store call made by the service
	SeedFile     string        // optional YAML file imported into an empty store

	// Redis
	RedisAddr     string        // ex: "localhost:6379"
	RedisUser     string        // optional
	RedisPassword string        // optional
	RedisDB       int           // Redis DB number
	RedisDT       time.Duration // Redis dial timeout (ex: 5s)
	RedisRT       time.Duration // Redis read timeout (ex: 3s)
	RedisWT       time.Duration // Redis write timeout (ex: 3s)
	RedisPoolSize int           // Redis connection pool size

	// Mongo
	MongoURI        string // ex: "mongodb://localhost:27017"
	MongoDatabase   string
	MongoCollection string

	// Connection retry, shared by redis and mongo
	StoreConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	StoreRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	StoreMaxWait        time.Duration // max wait between retries (ex: 10s)
	StorePingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	StoreWarnThreshold  int           // warn after this many attempts

	// Catalog
	CatalogURL      string        // SWAPI-compatible base URL
	CatalogTimeout  time.Duration // bound on one catalog listing
	CatalogMaxPages int           // pages followed per listing
	CatalogBreaker  bool          // wrap catalog calls in a circuit breaker

	CORSOrigins  []string // allowed CORS origins ("*" for any)
	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	RateBurst    int      // per-IP burst
	RatePerMin   int      // per-IP sustained requests per minute
}

func Load() *Config {
	loadEnvFile(getenv("STARFAV_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STARFAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STARFAV_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STARFAV_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("STARFAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STARFAV_PRETTY_LOG", true),

		// Store
		StoreBackend: mustBackend("STARFAV_STORE_BACKEND", BackendRedis),
		StoreTimeout: mustDuration("STARFAV_STORE_TIMEOUT", 5*time.Second),
		SeedFile:     getenv("STARFAV_SEED_FILE", ""),

		// Redis settings
		RedisUser:     getenv("STARFAV_REDIS_USERNAME", ""),
		RedisPassword: getenv("STARFAV_REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("STARFAV_REDIS_DB", 0),
		RedisDT:       mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:       mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:       mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize: getenvInt("REDIS_POOL_SIZE", 10),

		// Mongo settings
		MongoDatabase:   getenv("STARFAV_MONGO_DATABASE", "starfav"),
		MongoCollection: getenv("STARFAV_MONGO_COLLECTION", "favorites"),

		// Connection retry
		StoreConnectTimeout: mustDuration("STORE_CONNECT_TIMEOUT", 30*time.Second),
		StoreRetryInterval:  mustDuration("STORE_RETRY_INTERVAL", 2*time.Second),
		StoreMaxWait:        mustDuration("STORE_MAX_WAIT", 10*time.Second),
		StorePingTimeout:    mustDuration("STORE_PING_TIMEOUT", 5*time.Second),
		StoreWarnThreshold:  getenvInt("STORE_WARN_THRESHOLD", 3),

		// Catalog
		CatalogURL:      strings.TrimRight(getenv("STARFAV_CATALOG_URL", "https://swapi.dev/api"), "/"),
		CatalogTimeout:  mustDuration("STARFAV_CATALOG_TIMEOUT", 10*time.Second),
		CatalogMaxPages: getenvInt("STARFAV_CATALOG_MAX_PAGES", 10),
		CatalogBreaker:  mustBool("STARFAV_CATALOG_BREAKER", true),

		// Access restrictions
		CORSOrigins:  splitAndTrim(getenv("STARFAV_CORS_ORIGINS", "*")),
		AllowedHosts: splitAndTrim(getenv("STARFAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("STARFAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STARFAV_TRUST_PROXY", false),
		RateBurst:    getenvInt("STARFAV_RATE_BURST", 60),
		RatePerMin:   getenvInt("STARFAV_RATE_PER_MIN", 120),
	}

	// Backend-specific settings are only required for the selected backend
	switch cfg.StoreBackend {
	case BackendRedis:
		cfg.RedisAddr = requireEnv("STARFAV_REDIS_ADDR")
	case BackendMongo:
		cfg.MongoURI = requireEnv("STARFAV_MONGO_URI")
	}

	if cfg.CatalogMaxPages < 1 {
		cfg.CatalogMaxPages = 1
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.RedisPassword != "" {
		c.RedisPassword = "***REDACTED***"
	}
	if c.RedisUser != "" {
		c.RedisUser = "***REDACTED***"
	}
	if c.MongoURI != "" {
		c.MongoURI = "***REDACTED***"
	}
	return c
}

// loadEnvFile merges a dotenv file into the environment.
// Variables already set win. A missing file is not an error.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("❌ FATAL: cannot read env file %s: %v", path, err))
	}
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

func mustBackend(key, def string) string {
	v := strings.ToLower(getenv(key, def))
	switch v {
	case BackendRedis, BackendMongo, BackendMemory:
		return v
	default:
		panic(fmt.Sprintf("❌ FATAL: %s must be one of redis, mongo, memory (got %q)", key, v))
	}
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
