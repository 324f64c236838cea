package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Env struct {
	AppAddr string
	GinMode string

	UpstreamBaseURL string
	ReadTimeout     time.Duration
	MockTimeout     time.Duration

	CacheTTL   time.Duration
	CacheStore string // memory | file | mysql
	CacheDir   string
	DBDSN      string

	RetryCount int
	RetryDelay time.Duration
	DemoMode   bool

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	VehicleIDConfig string

	CORSOrigins []string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	return Env{
		AppAddr: envStr("APP_ADDR", ":8080"),
		GinMode: envStr("GIN_MODE", ""),

		UpstreamBaseURL: envStr("UPSTREAM_BASE_URL", ""),
		ReadTimeout:     envDuration("UPSTREAM_READ_TIMEOUT", 10*time.Second),
		MockTimeout:     envDuration("UPSTREAM_MOCK_TIMEOUT", 3*time.Second),

		CacheTTL:   envDuration("CACHE_TTL", 2*time.Minute),
		CacheStore: strings.ToLower(envStr("CACHE_STORE", "memory")),
		CacheDir:   envStr("CACHE_DIR", "./data/cache"),
		DBDSN:      envStr("CACHE_DB_DSN", ""),

		RetryCount: envInt("WRITE_RETRY_COUNT", 2),
		RetryDelay: envDuration("WRITE_RETRY_DELAY", 500*time.Millisecond),
		DemoMode:   envBool("DEMO_MODE", false),

		JWTSecret:         envStr("JWT_SECRET", "super-secret-key-change-me"),
		AdminEmail:        envStr("ADMIN_EMAIL", "admin@example.com"),
		AdminPasswordHash: envStr("ADMIN_PASSWORD_HASH", ""),

		VehicleIDConfig: envStr("VEHICLE_ID_CONFIG", "config/vehicle_ids.json"),

		CORSOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func envList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envStr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid integer in environment, using default")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid duration in environment, using default")
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
