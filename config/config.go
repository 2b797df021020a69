package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Env              string
	Port             string
	Mongo            MongoConfig
	Redis            RedisConfig
	Session          SessionConfig
	SMTP             SMTPConfig
	Twilio           TwilioConfig
	Cloudinary       CloudinaryConfig
	Booking          BookingConfig
	Notify           NotifyConfig
	CORSOrigins      []string
	ReminderSchedule string
}

// MongoConfig holds database configuration
type MongoConfig struct {
	URI      string
	Database string
	// Transactions wraps the appointment and payment inserts in one transaction (needs a replica set)
	Transactions bool
}

// RedisConfig holds session store configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// SMTPConfig holds mail configuration
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// TwilioConfig holds SMS configuration
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// CloudinaryConfig holds image host configuration
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// BookingConfig holds the fallbacks used when a requested service is not in the employee's specialties
type BookingConfig struct {
	DefaultDuration int
	DefaultPrice    float64
}

// NotifyConfig holds notification dispatcher configuration
type NotifyConfig struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	env := getEnv("ENV", "development")

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}
	if mongoURI == "" {
		if !IsDevelopment(env) {
			return nil, errors.New("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
		mongoURI = "mongodb://localhost:27017"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if !IsDevelopment(env) {
			return nil, errors.New("JWT_SECRET environment variable is required")
		}
		secret = "salonsync-development-secret"
	}

	cfg := &Config{
		Env:  env,
		Port: getEnv("PORT", "8080"),
		Mongo: MongoConfig{
			URI:          mongoURI,
			Database:     getEnv("DB_NAME", "salonsync"),
			Transactions: getEnvAsBool("MONGO_TRANSACTIONS", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret: secret,
			TTL:    time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		},
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: getEnvAsInt("SMTP_PORT", 2525),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: getEnv("MAIL_FROM", os.Getenv("SMTP_USER")),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_FROM_NUMBER"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Booking: BookingConfig{
			DefaultDuration: getEnvAsInt("SERVICE_DEFAULT_DURATION", 60),
			DefaultPrice:    getEnvAsFloat("SERVICE_DEFAULT_PRICE", 100),
		},
		Notify: NotifyConfig{
			Workers:     getEnvAsInt("NOTIFY_WORKERS", 4),
			QueueSize:   getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
			MaxAttempts: getEnvAsInt("NOTIFY_MAX_ATTEMPTS", 3),
		},
		CORSOrigins:      getEnvAsList("CORS_ALLOWED_ORIGINS"),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 9 * * *"),
	}

	return cfg, nil
}

// IsDevelopment reports whether env names a development environment
func IsDevelopment(env string) bool {
	return env == "development" || env == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
