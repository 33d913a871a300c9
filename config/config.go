package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs at startup. It is built once
// in main and passed through constructors; handlers never read the
// environment themselves.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Optional working-hours cache. Disabled when empty.
	RedisAddr string

	// Optional SMTP settings for confirmation/reminder mail.
	// Mail is disabled when SMTPHost is empty.
	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found. Using environment variables directly.")
	}

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	cfg := Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "default_secret"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    port,
		EmailUser:   os.Getenv("EMAIL_USER"),
		EmailPass:   os.Getenv("EMAIL_PASS"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
