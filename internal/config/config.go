package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	RedisURL       string
	AuthURL        string  // Base URL of the identity provider
	AuthAPIKey     string  // API key sent with every identity provider request
	Port           string  // HTTP listen port
	RateLimitRPS   float64 // Rate limit for auth endpoints (requests per second)
	RateLimitBurst int     // Burst size for auth endpoints
	OTPCooldown    int     // Minimum seconds between passcode emails per address
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		AuthURL:        getEnv("AUTH_URL", ""),
		AuthAPIKey:     getEnv("AUTH_API_KEY", ""),
		Port:           getEnv("PORT", "3000"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		OTPCooldown:    getEnvInt("OTP_COOLDOWN_SECONDS", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
