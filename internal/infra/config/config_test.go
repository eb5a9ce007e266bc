package config

import (
	"testing"
	"time"

	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "MONGO_URI", "DB_NAME", "COLLECTION_NAME", "ID_FIELD",
		"DATABASE_URL", "JSON_PATH", "MESSAGE_TEXT_PATH", "IMAGE_1_PATH", "IMAGE_2_PATH",
		"IMAGE_3_PATH", "NUM_IMAGES", "MESSAGE_DELAY", "MESSAGE_PAUSE", "TELEGRAM_TEST_USER_ID",
		"MAX_SENDS_PER_SECOND", "SOURCE_TIMEOUT", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"TELEGRAM_BOT_TOKEN": "tok"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.TelegramToken)
	assert.Equal(t, "Bote", cfg.MongoDatabase)
	assert.Equal(t, "BoteCol", cfg.CollectionName)
	assert.Equal(t, "id", cfg.IDField)
	assert.Equal(t, "users.json", cfg.RecipientFilePath)
	assert.Equal(t, "message_text.json", cfg.ContentFilePath)
	assert.Equal(t, [MaxImages]string{"imagen1.jpg", "imagen2.jpg", "imagen3.jpg"}, cfg.ImagePaths)
	assert.Equal(t, 3, cfg.DefaultImageCount)
	assert.Equal(t, 1500*time.Millisecond, cfg.MessageDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.MessagePause)
	assert.Equal(t, 25, cfg.MaxSendsPerSecond)
	assert.Equal(t, 30*time.Second, cfg.SourceTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_AggregatesErrors(t *testing.T) {
	setEnv(t, map[string]string{
		"NUM_IMAGES":    "three",
		"MESSAGE_DELAY": "-1",
	})

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NUM_IMAGES")
	assert.Contains(t, err.Error(), "MESSAGE_DELAY")
}

func intPtr(n int) *int { return &n }

func baseConfig() *AppConfig {
	return &AppConfig{
		TelegramToken:     "tok",
		DefaultImageCount: 3,
		ImagePaths:        [MaxImages]string{"a.jpg", "b.jpg", "c.jpg"},
		MessageDelay:      time.Second,
		TestUserID:        "12345",
	}
}

func TestRunConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		flags   Flags
		wantErr error
		check   func(t *testing.T, rc RunConfig)
	}{
		{
			name:  "test mode uses test recipient",
			flags: Flags{Mode: "test"},
			check: func(t *testing.T, rc RunConfig) {
				assert.Equal(t, ModeTest, rc.Mode)
				assert.Equal(t, recipient.ID(12345), rc.TestRecipient)
				assert.Equal(t, 3, rc.ImageCount)
			},
		},
		{
			name:  "images flag overrides default",
			flags: Flags{Mode: "test", Images: intPtr(0)},
			check: func(t *testing.T, rc RunConfig) {
				assert.Equal(t, 0, rc.ImageCount)
			},
		},
		{
			name:  "legacy source aliases",
			flags: Flags{Mode: "production", Source: "json", Images: intPtr(2)},
			check: func(t *testing.T, rc RunConfig) {
				assert.Equal(t, SourceFile, rc.Source)
				assert.Equal(t, 2, rc.ImageCount)
				assert.Equal(t, [MaxImages]string{"a.jpg", "b.jpg", "c.jpg"}, rc.ImagePaths)
			},
		},
		{
			name:    "missing token",
			mutate:  func(c *AppConfig) { c.TelegramToken = "" },
			flags:   Flags{Mode: "test"},
			wantErr: ErrMissingToken,
		},
		{
			name:    "test mode without valid id",
			mutate:  func(c *AppConfig) { c.TestUserID = "me" },
			flags:   Flags{Mode: "test"},
			wantErr: ErrInvalidTestUser,
		},
		{
			name:    "mongodb without uri",
			flags:   Flags{Mode: "production", Source: "mongodb"},
			wantErr: ErrMissingMongoURI,
		},
		{
			name:    "postgres without dsn",
			flags:   Flags{Mode: "production", Source: "postgres"},
			wantErr: ErrMissingDatabaseURL,
		},
		{
			name:   "production ignores test id",
			mutate: func(c *AppConfig) { c.TestUserID = "" },
			flags:  Flags{Mode: "production", Source: "file"},
			check: func(t *testing.T, rc RunConfig) {
				assert.Equal(t, recipient.ID(0), rc.TestRecipient)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			rc, err := cfg.RunConfig(tt.flags)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, rc)
		})
	}
}

func TestRunConfig_RejectsBadValues(t *testing.T) {
	cfg := baseConfig()

	for _, f := range []Flags{
		{Mode: "staging"},
		{Mode: "production", Source: "ftp"},
		{Mode: "test", Images: intPtr(4)},
		{Mode: "test", Images: intPtr(-1)},
		{Mode: "test", Images: intPtr(-2)},
		{Mode: "test", Schedule: "every day"},
	} {
		_, err := cfg.RunConfig(f)
		assert.Error(t, err, "flags %+v", f)
	}
}
