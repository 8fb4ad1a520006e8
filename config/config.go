package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"akademyx-backend/logger"
)

// Config holds every setting the service needs. It is loaded and validated
// once at startup and passed into constructors; business logic never reads
// the process environment directly.
type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// WhatsApp Business API settings. The access token is unused while the
	// integration is simulated; the webhook token gates the verification
	// handshake.
	WhatsAppAccessToken   string
	WhatsAppPhoneNumberID string
	WhatsAppWebhookToken  string
	WhatsAppSendDelay     time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	// Kafka settings (comma-separated brokers); empty disables events
	KafkaBrokers string
}

// Load reads .env (if present) and the process environment, applies
// defaults and validates the result.
func Load() (*Config, error) {
	// Try loading .env from different locations
	envLocations := []string{
		".env",
		"config/.env",
		"../config/.env",
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "akademyx"),

		WhatsAppAccessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		WhatsAppPhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppWebhookToken:  os.Getenv("WHATSAPP_WEBHOOK_TOKEN"),
		WhatsAppSendDelay:     time.Second,

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		SMTPHost:  getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  587,
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailFrom: os.Getenv("EMAIL_FROM"),

		KafkaBrokers: getEnvWithDefault("KAFKA_BROKERS", "127.0.0.1:9092"),
	}

	if p := os.Getenv("SMTP_PORT"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", p, err)
		}
		cfg.SMTPPort = v
	}

	if d := os.Getenv("WHATSAPP_SEND_DELAY"); d != "" {
		v, err := time.ParseDuration(d)
		if err != nil {
			return nil, fmt.Errorf("invalid WHATSAPP_SEND_DELAY %q: %w", d, err)
		}
		cfg.WhatsAppSendDelay = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBHost == "" || c.DBPort == "" || c.DBUser == "" || c.DBName == "" {
		return fmt.Errorf("database configuration incomplete (DB_HOST, DB_PORT, DB_USER, DB_NAME)")
	}
	if c.WhatsAppWebhookToken == "" {
		// Not fatal: verification handshakes will all be rejected until set.
		logger.Warn("WHATSAPP_WEBHOOK_TOKEN is not set; webhook verification will always fail")
	}
	if c.SMTPUser == "" || c.SMTPPass == "" {
		logger.Warn("SMTP credentials not configured; outbound email is disabled")
	}
	return nil
}

// EmailEnabled reports whether SMTP delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// KafkaEnabled reports whether event publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return c.KafkaBrokers != ""
}

// DBConnString builds the lib/pq connection string.
func (c *Config) DBConnString() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=disable"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
