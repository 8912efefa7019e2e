package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	ServiceName string
	// Email addressing
	FromEmail  string
	TeamEmails []string
	// Mail provider credentials. Exactly one block is selected at
	// transport-selection time, in the order listed here.
	ResendAPIKey   string
	SendGridAPIKey string
	GmailUser      string
	GmailPass      string
	PostmarkAPIKey string
	// Generic SMTP fallback
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPSecure bool
	// CORS
	AllowedOrigins []string
	// Redis (optional; enables cross-instance rate limiting)
	RedisURL      string
	RedisPassword string
	// Contact endpoint policy
	ContactRateLimit       int
	ContactRateWindowMins  int
	DispatchTimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		ServiceName: getEnv("SERVICE_NAME", "Rapture Twelve Contact API"),
		FromEmail:   getEnv("FROM_EMAIL", "noreply@rapturetwelve.com"),
		TeamEmails: splitAndTrim(getEnv("CONTACT_TEAM_EMAILS",
			"antonyshane@rapturetwelve.com,kruthinvinay@rapturetwelve.com")),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		GmailUser:      getEnv("GMAIL_USER", ""),
		GmailPass:      getEnv("GMAIL_PASS", ""),
		PostmarkAPIKey: getEnv("POSTMARK_API_KEY", ""),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		SMTPSecure:     getEnvBool("SMTP_SECURE", false),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		// 5 submissions per source IP per 15 minutes
		ContactRateLimit:       getEnvInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindowMins:  getEnvInt("CONTACT_RATE_WINDOW_MINUTES", 15),
		DispatchTimeoutSeconds: getEnvInt("DISPATCH_TIMEOUT_SECONDS", 15),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
