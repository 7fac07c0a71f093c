package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	JWTSecret           string
	JWTExpiry           time.Duration
	DatabaseURL         string
	SMTPHost            string
	SMTPPort            string
	SMTPUser            string
	SMTPPassword        string
	ResetURLBase        string
	FirebaseCredentials string
	GoogleProjectID     string
	PubSubTopic         string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Session tokens stay valid for 100 hours unless overridden.
	tokenExpiry := 100 * time.Hour
	if exp := os.Getenv("JWT_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			tokenExpiry = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:           tokenExpiry,
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=taskforge port=5432 sslmode=disable"),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        getEnv("SMTP_PASS", ""),
		ResetURLBase:        getEnv("RESET_URL_BASE", "http://localhost:3000/reset"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		PubSubTopic:         getEnv("PUBSUB_TOPIC", "notification-fanout"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
