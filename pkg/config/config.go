package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	RedisURL        string
	JWTSecret       string
	MetricsPort     string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://127.0.0.1:5000"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %v, using default.", key, err)
		return defaultValue
	}
	return d
}
