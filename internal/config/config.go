package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	ClientOrigin string
	UploadDir    string

	RateLimitPerMinute int
	RateLimitBurst     int
}

func Load() *Config {
	// Missing .env is fine; deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "skillswap"),
		DBPassword: getEnv("DB_PASSWORD", "skillswap_dev_password"),
		DBName:     getEnv("DB_NAME", "skillswap"),

		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret-change-me"),
		AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:  getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 10),
	}
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
