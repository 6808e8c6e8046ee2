package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                string
	MongoDBURI          string
	MongoDBPassword     string
	DatabaseName        string
	AccessTokenSecret   string
	RefreshTokenSecret  string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	CORSOrigin          string
	CommissionPercent   float64
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	MailFrom            string
	OTPLifetime         time.Duration
	Environment         string
	LogLevel            string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		MongoDBURI:          os.Getenv("MONGODB_URI"),
		MongoDBPassword:     os.Getenv("MONGODB_PASSWORD"),
		DatabaseName:        getEnvWithDefault("MONGODB_DATABASE", "devlink"),
		AccessTokenSecret:   os.Getenv("JWT_ACCESS_SECRET"),
		RefreshTokenSecret:  os.Getenv("JWT_REFRESH_SECRET"),
		CORSOrigin:          getEnvWithDefault("CORS_ORIGIN", "http://localhost:3000"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPUsername:        os.Getenv("SMTP_USERNAME"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		MailFrom:            getEnvWithDefault("MAIL_FROM", "no-reply@devlink.dev"),
		Environment:         getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are required")
	}

	accessTTL, err := ParseTTL(getEnvWithDefault("JWT_ACCESS_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %v", err)
	}
	cfg.AccessTokenTTL = accessTTL

	refreshTTL, err := ParseTTL(getEnvWithDefault("JWT_REFRESH_TTL", "7d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TTL: %v", err)
	}
	cfg.RefreshTokenTTL = refreshTTL

	otpTTL, err := ParseTTL(getEnvWithDefault("OTP_LIFETIME", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_LIFETIME: %v", err)
	}
	cfg.OTPLifetime = otpTTL

	commission := getEnvWithDefault("COMMISSION_PERCENT", "10")
	pct, err := strconv.ParseFloat(commission, 64)
	if err != nil || pct < 0 || pct > 100 {
		return nil, fmt.Errorf("invalid COMMISSION_PERCENT: %q", commission)
	}
	cfg.CommissionPercent = pct

	smtpPort := getEnvWithDefault("SMTP_PORT", "587")
	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %q", smtpPort)
	}
	cfg.SMTPPort = port

	return cfg, nil
}

// ParseTTL accepts the expiry strings used for token lifetimes, e.g. "15m" or
// "7d". time.ParseDuration does not know days, so the "d" suffix is expanded
// before parsing.
func ParseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
