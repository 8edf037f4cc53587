package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port string

	// SoundCloud API access
	SoundCloudAPIURL   string
	SoundCloudClientID string

	// First-seen timestamp cache (Redis). Both RedisURL and RedisToken must
	// be set for the cache to be used; otherwise the server runs in
	// no-backend mode and smart timestamps degrade to now().
	RedisURL     string
	RedisToken   string
	CacheTimeout time.Duration

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		SoundCloudAPIURL:   getEnv("SOUNDCLOUD_API_URL", "https://api-v2.soundcloud.com"),
		SoundCloudClientID: os.Getenv("SOUNDCLOUD_CLIENT_ID"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisToken:         os.Getenv("REDIS_TOKEN"),
		CacheTimeout:       time.Duration(getEnvInt("CACHE_TIMEOUT_MS", 2000)) * time.Millisecond,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPath:            getEnv("LOG_PATH", ""),
	}
}

// CacheConfigured reports whether a cache backend is configured. Missing
// URL or token means no-backend mode, not an error.
func (c *Config) CacheConfigured() bool {
	return c.RedisURL != "" && c.RedisToken != ""
}
