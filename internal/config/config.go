package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBConfigured      bool
	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	Vision    VisionConfig
	RateLimit RateLimitConfig

	TiersConfigPath string
}

// VisionConfig configures the screenshot extraction backend.
type VisionConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// RateLimitConfig configures the per-user upload limiter. Disabled unless a
// redis address is set.
type RateLimitConfig struct {
	Enabled     bool
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	UploadRate  float64
	UploadBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	redisAddr := strings.TrimSpace(getenv("REDIS_ADDR", ""))

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "screenclash"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", ""),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "screenclash"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),

		Vision: VisionConfig{
			APIKey:    strings.TrimSpace(getenv("OPENAI_API_KEY", "")),
			BaseURL:   getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:     getenv("OPENAI_VISION_MODEL", "gpt-4o"),
			MaxTokens: getenvInt("OPENAI_VISION_MAX_TOKENS", 1000),
		},

		RateLimit: RateLimitConfig{
			Enabled:     redisAddr != "",
			RedisAddr:   redisAddr,
			RedisPass:   strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			RedisDB:     getenvInt("REDIS_DB", 0),
			UploadRate:  getenvFloat("UPLOAD_RATE_PER_SEC", 0.2),
			UploadBurst: getenvInt("UPLOAD_BURST", 3),
		},

		TiersConfigPath: getenv("TIERS_CONFIG_PATH", ""),
	}

	// The memory fallback store takes over when no database host is set.
	cfg.DBConfigured = cfg.DBType == "sqlite" || cfg.DBHost != ""

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
