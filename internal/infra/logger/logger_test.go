package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"promo_broadcast_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   logrus.Level
		wantOK bool
	}{
		{"debug", logrus.DebugLevel, true},
		{" WARN ", logrus.WarnLevel, true},
		{"", logrus.InfoLevel, false},
		{"loud", logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestFormatterFor(t *testing.T) {
	assert.IsType(t, &logrus.JSONFormatter{}, formatterFor("production"))
	assert.IsType(t, &logrus.JSONFormatter{}, formatterFor("Staging"))
	assert.IsType(t, &logrus.TextFormatter{}, formatterFor("development"))
	assert.IsType(t, &logrus.TextFormatter{}, formatterFor(""))
}

func TestInit_TagsComponentsWithRun(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "debug", Environment: "production"}, "Production", " database ")
	var buf bytes.Buffer
	Log.SetOutput(&buf)

	Component("dispatch").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "dispatch", line["component"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "production", line["mode"])
	assert.Equal(t, "database", line["source"])
	assert.Contains(t, line, "pid")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "loud", Environment: "development"}, "test", "file")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}
