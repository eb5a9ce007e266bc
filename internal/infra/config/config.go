package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken     string
	MongoURI          string
	MongoDatabase     string
	CollectionName    string // Mongo collection, also the table name for the postgres source
	IDField           string
	DatabaseURL       string // PostgreSQL DSN
	RecipientFilePath string
	ContentFilePath   string
	ImagePaths        [MaxImages]string
	DefaultImageCount int
	MessageDelay      time.Duration // Between recipients
	MessagePause      time.Duration // Between the caption and the detailed message
	TestUserID        string        // Raw value, validated only in test mode
	MaxSendsPerSecond int
	SourceTimeout     time.Duration
	LogLevel          string
	Environment       string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	var errs *multierror.Error
	cfg := &AppConfig{
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     envOr("DB_NAME", "Bote"),
		CollectionName:    envOr("COLLECTION_NAME", "BoteCol"),
		IDField:           envOr("ID_FIELD", "id"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RecipientFilePath: envOr("JSON_PATH", "users.json"),
		ContentFilePath:   envOr("MESSAGE_TEXT_PATH", "message_text.json"),
		ImagePaths: [MaxImages]string{
			envOr("IMAGE_1_PATH", "imagen1.jpg"),
			envOr("IMAGE_2_PATH", "imagen2.jpg"),
			envOr("IMAGE_3_PATH", "imagen3.jpg"),
		},
		TestUserID: strings.TrimSpace(os.Getenv("TELEGRAM_TEST_USER_ID")),
	}

	var err error
	if cfg.DefaultImageCount, err = strconv.Atoi(envOr("NUM_IMAGES", "3")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid NUM_IMAGES: %w", err))
	}
	if cfg.MessageDelay, err = parseSeconds(envOr("MESSAGE_DELAY", "1.5")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid MESSAGE_DELAY: %w", err))
	}
	if cfg.MessagePause, err = parseSeconds(envOr("MESSAGE_PAUSE", "0.5")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid MESSAGE_PAUSE: %w", err))
	}
	if cfg.MaxSendsPerSecond, err = strconv.Atoi(envOr("MAX_SENDS_PER_SECOND", "25")); err != nil || cfg.MaxSendsPerSecond < 0 {
		errs = multierror.Append(errs, fmt.Errorf("invalid MAX_SENDS_PER_SECOND %q", os.Getenv("MAX_SENDS_PER_SECOND")))
	}
	if cfg.SourceTimeout, err = time.ParseDuration(envOr("SOURCE_TIMEOUT", "30s")); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid SOURCE_TIMEOUT: %w", err))
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseSeconds accepts fractional seconds ("1.5") as used by the .env files.
func parseSeconds(raw string) (time.Duration, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("%v is negative", f)
	}
	return time.Duration(f * float64(time.Second)), nil
}
