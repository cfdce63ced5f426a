package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	AppEnv  string

	CORSOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SpotifyClientID      string
	SpotifyClientSecret  string
	SpotifyCountryMarket string

	// Consumed only by the dashboard frontend; recognized here so a shared
	// .env file does not trip up the backend.
	DashboardBackendURL string

	ServerPort string
}

// Load reads the environment (plus an optional .env file) into a Config.
// The caller owns the returned value; nothing is cached at package level.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Spotify Playlist Catalog"),
		AppEnv:  getEnv("APP_ENV", "local"),

		CORSOrigins: splitOrigins(getEnv("BACKEND_CORS_ORIGINS", "")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "task_user"),
		DBPassword: getEnv("DB_PASSWORD", "task_password"),
		DBName:     getEnv("DB_NAME", "spotify_catalog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SpotifyClientID:      getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret:  getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyCountryMarket: getEnv("SPOTIFY_COUNTRY_MARKET", "US"),

		DashboardBackendURL: getEnv("DASHBOARD_BACKEND_URL", ""),

		ServerPort: getEnv("SERVER_PORT", "8080"),
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		log.Println("Spotify API credentials not set, ingestion will be rejected")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
