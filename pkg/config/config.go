package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// External rate source
	NBUAPIURL    string
	FetchTimeout time.Duration

	// Sync cycle
	SyncInterval      time.Duration
	NotifyConcurrency int

	// SMTP transport
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	NotifyTimeout time.Duration

	// Per-IP rate limit for the subscription endpoints, in ulule/limiter
	// formatted notation (e.g. "100-H").
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("NBU_API_URL", "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange?json")
	viper.SetDefault("FETCH_TIMEOUT", "15s")
	viper.SetDefault("SYNC_INTERVAL", "1h")
	viper.SetDefault("NOTIFY_CONCURRENCY", 4)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "noreply@ratewatch.local")
	viper.SetDefault("NOTIFY_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-H")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.NBUAPIURL = viper.GetString("NBU_API_URL")
	cfg.FetchTimeout = viper.GetDuration("FETCH_TIMEOUT")
	cfg.SyncInterval = viper.GetDuration("SYNC_INTERVAL")
	cfg.NotifyConcurrency = viper.GetInt("NOTIFY_CONCURRENCY")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	cfg.NotifyTimeout = viper.GetDuration("NOTIFY_TIMEOUT")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
