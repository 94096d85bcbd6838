package config

import (
	"log"
	"os"

	"kisanmandi_backend/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort      string
	Host         string
	DatabasePath string

	// Drop and reseed the schema at startup (local development only)
	ResetDB bool

	// JWT Settings
	JWTSecret string

	// External services
	OpenAIAPIKey      string
	RazorpayKeyID     string
	RazorpayKeySecret string
}

// LoadConfig reads configuration from the environment (and .env if
// present). Missing values fall back to insecure local-development
// defaults; production deployments must override them.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:      getEnv("PORT", "5000"),
		Host:         getEnv("HOST", "0.0.0.0"),
		DatabasePath: getEnv("DATABASE_PATH", "kisan_mandi.db"),

		ResetDB: os.Getenv("RESET_DB") == "true",

		JWTSecret: getEnv("JWT_SECRET", utils.DefaultJWTSecret),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", "rzp_test_YOUR_KEY"),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", "YOUR_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
