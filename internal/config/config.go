package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey   string
	DatabaseURL    string
	HTTPPort       string
	StoreBaseURL   string
	AllowedOrigins []string
	SessionTTL     time.Duration
	LogLevel       string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		DatabaseURL:    getEnv("DATABASE_URL", "luxestore.db"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		StoreBaseURL:   strings.TrimRight(getEnv("STORE_BASE_URL", "https://luxe-store-lilac.vercel.app"), "/"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		SessionTTL:     time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}

	// A missing API key is a routing decision, not a startup error: every
	// chat turn resolves through the local rule table instead.
	if AppConfig.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, chat replies will use the local fallback only")
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
