package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	AutoMigrate    bool
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	ResendAPIKey string
	SiteURL      string

	SupabaseURL        string
	SupabaseServiceKey string
	StorageBucket      string
	JWTSecret          string

	AMQPURL string

	RedisURL           string
	RateLimitPerMinute int
	TrustProxyHeaders  bool

	AssignmentCompareAndSwap bool
	MaxUploadBytes           int64
}

// Load reads and validates the API configuration.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads .env when one exists and reads the environment without
// validating it. The worker and migrate commands check only what they use.
func Read() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AutoMigrate:    getEnvBool("AUTO_MIGRATE", false),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "quotes@quotedesk.local"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		SiteURL:      strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),

		SupabaseURL:        strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		StorageBucket:      getEnv("STORAGE_BUCKET", "documents"),
		JWTSecret:          os.Getenv("JWT_SECRET"),

		AMQPURL: os.Getenv("AMQP_URL"),

		RedisURL:           os.Getenv("REDIS_URL"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),

		AssignmentCompareAndSwap: getEnvBool("ASSIGNMENT_COMPARE_AND_SWAP", false),
		MaxUploadBytes:           int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
