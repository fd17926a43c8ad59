package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	DBUrl       string
	FrontendURL string
	// Admin authentication
	AdminEmails      []string
	JWTSecret        string
	OTPTTL           time.Duration
	OTPMaxAttempts   int
	TokenTTL         time.Duration
	RememberTokenTTL time.Duration
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	MailFromEmail  string
	ContactEmailTo string
	// Resend takes precedence over SMTP when an API key is set
	ResendAPIKey string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Security event log file (rotated); empty logs to stdout only
	SecurityLogFile string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; production reads the real environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Admin authentication
		AdminEmails:      getEnvList("ADMIN_EMAILS"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		OTPTTL:           time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,
		OTPMaxAttempts:   getEnvInt("OTP_MAX_ATTEMPTS", 5),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		RememberTokenTTL: time.Duration(getEnvInt("REMEMBER_TOKEN_TTL_HOURS", 720)) * time.Hour,
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		MailFromEmail:  getEnv("MAIL_FROM_EMAIL", "noreply@alvantexport.com"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		SecurityLogFile:      getEnv("SECURITY_LOG_FILE", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Record endpoints will answer 503.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. OTP challenges will be kept in memory.")
	}
	if len(cfg.AdminEmails) == 0 {
		log.Println("WARNING: ADMIN_EMAILS is empty. Nobody can log in to the admin dashboard.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. A random secret is used; tokens will not survive a restart.")
	}

	return cfg, nil
}

// IsProduction reports whether the API runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ClientConfig configures the portalctl command-line client.
type ClientConfig struct {
	APIURL    string
	ConfigDir string
	Timeout   time.Duration
}

// LoadClientConfig reads PORTAL_API_URL, PORTAL_CONFIG_DIR and PORTAL_TIMEOUT_SECONDS.
func LoadClientConfig() (*ClientConfig, error) {
	_ = godotenv.Load()

	dir := getEnv("PORTAL_CONFIG_DIR", "")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "alvant-portal")
	}

	return &ClientConfig{
		APIURL:    strings.TrimRight(getEnv("PORTAL_API_URL", "http://localhost:8080"), "/"),
		ConfigDir: dir,
		Timeout:   time.Duration(getEnvInt("PORTAL_TIMEOUT_SECONDS", 15)) * time.Second,
	}, nil
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

// getEnvList splits a comma-separated variable, lower-casing and dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
