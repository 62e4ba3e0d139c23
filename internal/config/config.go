package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Eggs       EggConfig
	ImageStore ImageStoreConfig
	Alerts     AlertsConfig
	Reporting  ReportingConfig
	Sheets     SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// EggConfig holds tunables for the egg registration policy.
type EggConfig struct {
	// DuplicateDistanceThreshold is the distance (in egg coordinate units) at
	// or below which a new observation matches an existing unpicked egg.
	DuplicateDistanceThreshold float64
}

// ImageStoreConfig contains MinIO connection settings for notification images.
// An empty Endpoint disables image uploads entirely.
type ImageStoreConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Secure        bool
	PublicBaseURL string
}

// AlertsConfig configures the operator webhook for critical notifications.
// An empty WebhookURL disables forwarding.
type AlertsConfig struct {
	WebhookURL string
}

// ReportingConfig holds scheduler-related settings for the daily stats report.
type ReportingConfig struct {
	Enabled      bool
	CronSchedule string
	Timezone     string
}

// SheetsConfig contains configuration required to export daily stats to
// Google Sheets. Both fields empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	threshold, err := getenvFloat("EGG_DUPLICATE_DISTANCE_THRESHOLD", 1.0)
	if err != nil {
		return nil, err
	}

	secure, err := getenvBool("MINIO_SECURE", false)
	if err != nil {
		return nil, err
	}

	reportEnabled, err := getenvBool("REPORT_ENABLED", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "egguard"),
		},
		Eggs: EggConfig{
			DuplicateDistanceThreshold: threshold,
		},
		ImageStore: ImageStoreConfig{
			Endpoint:      os.Getenv("MINIO_ENDPOINT"),
			AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
			Bucket:        getenvWithDefault("MINIO_BUCKET", "egguard-notifications"),
			Secure:        secure,
			PublicBaseURL: os.Getenv("MINIO_PUBLIC_BASE_URL"),
		},
		Alerts: AlertsConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
		Reporting: ReportingConfig{
			Enabled:      reportEnabled,
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_STATS_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Eggs.DuplicateDistanceThreshold <= 0 {
		return errors.New("EGG_DUPLICATE_DISTANCE_THRESHOLD must be positive")
	}

	if c.ImageStore.Endpoint != "" {
		switch {
		case c.ImageStore.AccessKey == "":
			return errors.New("MINIO_ACCESS_KEY must be provided when MINIO_ENDPOINT is set")
		case c.ImageStore.SecretKey == "":
			return errors.New("MINIO_SECRET_KEY must be provided when MINIO_ENDPOINT is set")
		case c.ImageStore.Bucket == "":
			return errors.New("MINIO_BUCKET must not be empty")
		}
	}

	if c.Reporting.Enabled {
		if c.Reporting.CronSchedule == "" {
			return errors.New("REPORT_CRON_SCHEDULE must be provided")
		}
		if c.Reporting.Timezone == "" {
			return errors.New("TIMEZONE must be provided")
		}
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_STATS_ID must be set together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}
