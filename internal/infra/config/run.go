package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"

	"promo_broadcast_bot/internal/domain/recipient"
)

// MaxImages is the number of configurable image slots.
const MaxImages = 3

type Mode string

const (
	ModeTest       Mode = "test"
	ModeProduction Mode = "production"
)

type SourceKind string

const (
	SourceFile     SourceKind = "file"
	SourceDatabase SourceKind = "database" // MongoDB
	SourcePostgres SourceKind = "postgres"
)

var (
	ErrMissingMongoURI    = errors.New("MONGO_URI is not set")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
	ErrInvalidTestUser    = errors.New("test mode is enabled but TELEGRAM_TEST_USER_ID is not a valid user ID")
)

// Flags are the command line overrides for a run.
type Flags struct {
	Mode     string
	Source   string
	Images   *int // nil when the flag was not given
	Schedule string
}

// ParseSource maps a source flag value, including the legacy aliases, to a SourceKind.
func ParseSource(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file", "json", "":
		return SourceFile, nil
	case "database", "mongodb", "mongo":
		return SourceDatabase, nil
	case "postgres", "postgresql", "sql":
		return SourcePostgres, nil
	default:
		return "", fmt.Errorf("unknown recipient source %q", s)
	}
}

// ParseMode maps a mode flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTest, "":
		return ModeTest, nil
	case ModeProduction:
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// RunConfig is the immutable configuration of a broadcast run.
// It is built once at startup and passed by value; nothing mutates it afterwards.
type RunConfig struct {
	Mode              Mode
	Source            SourceKind
	ImageCount        int
	ImagePaths        [MaxImages]string
	MessageDelay      time.Duration
	MessagePause      time.Duration
	TestRecipient     recipient.ID
	ContentFilePath   string
	RecipientFilePath string
	MongoURI          string
	MongoDatabase     string
	CollectionName    string
	IDField           string
	DatabaseURL       string
	SourceTimeout     time.Duration
	Schedule          string
}

// RunConfig combines the loaded environment with the command line flags and validates
// the result. All validation failures are returned together.
func (c *AppConfig) RunConfig(f Flags) (RunConfig, error) {
	var errs *multierror.Error
	if c.TelegramToken == "" {
		errs = multierror.Append(errs, ErrMissingToken)
	}

	mode, err := ParseMode(f.Mode)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	source, err := ParseSource(f.Source)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	imageCount := c.DefaultImageCount
	if f.Images != nil {
		imageCount = *f.Images
	}

	rc := RunConfig{
		Mode:              mode,
		Source:            source,
		ImageCount:        imageCount,
		ImagePaths:        c.ImagePaths,
		MessageDelay:      c.MessageDelay,
		MessagePause:      c.MessagePause,
		ContentFilePath:   c.ContentFilePath,
		RecipientFilePath: c.RecipientFilePath,
		MongoURI:          c.MongoURI,
		MongoDatabase:     c.MongoDatabase,
		CollectionName:    c.CollectionName,
		IDField:           c.IDField,
		DatabaseURL:       c.DatabaseURL,
		SourceTimeout:     c.SourceTimeout,
		Schedule:          strings.TrimSpace(f.Schedule),
	}
	if mode == ModeTest {
		if id, err := strconv.ParseInt(c.TestUserID, 10, 64); err == nil && id > 0 {
			rc.TestRecipient = recipient.ID(id)
		}
	}

	if err := rc.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return RunConfig{}, err
	}
	return rc, nil
}

// Validate reports configuration errors that must abort the run before any send.
func (rc RunConfig) Validate() error {
	var errs *multierror.Error
	if rc.ImageCount < 0 || rc.ImageCount > MaxImages {
		errs = multierror.Append(errs, fmt.Errorf("image count %d is outside 0..%d", rc.ImageCount, MaxImages))
	}
	switch rc.Mode {
	case ModeTest:
		if rc.TestRecipient <= 0 {
			errs = multierror.Append(errs, ErrInvalidTestUser)
		}
	case ModeProduction:
		switch rc.Source {
		case SourceDatabase:
			if rc.MongoURI == "" {
				errs = multierror.Append(errs, ErrMissingMongoURI)
			}
		case SourcePostgres:
			if rc.DatabaseURL == "" {
				errs = multierror.Append(errs, ErrMissingDatabaseURL)
			}
		}
	}
	if rc.Schedule != "" {
		if _, err := cron.ParseStandard(rc.Schedule); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid schedule %q: %w", rc.Schedule, err))
		}
	}
	return errs.ErrorOrNil()
}
