package config

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, StorageBolt, cfg.StorageBackend)
	assert.Equal(t, "kpi.db", cfg.BoltPath)
	assert.True(t, cfg.SeedOnEmpty)
	assert.Equal(t, "gemini-2.5-flash", cfg.Report.Model)
	assert.Equal(t, 60*time.Second, cfg.Report.Timeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "MEMORY")
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("REPORT_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "gemini-key", cfg.Report.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Report.Timeout)
}

func TestValidate(t *testing.T) {
	t.Run("UnknownBackend", func(t *testing.T) {
		cfg := &Config{StorageBackend: "redis", Report: ReportConfig{Timeout: time.Second}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("MongoMissingCredentials", func(t *testing.T) {
		cfg := &Config{StorageBackend: StorageMongo, Report: ReportConfig{Timeout: time.Second}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("MongoURI", func(t *testing.T) {
		cfg := &Config{
			StorageBackend: StorageMongo,
			Mongo:          MongoConfig{URI: "mongodb://localhost:27017"},
			Report:         ReportConfig{Timeout: time.Second},
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestMongoConfig_ConnectionURI(t *testing.T) {
	m := MongoConfig{Username: "u", Password: "p", Cluster: "c.example.net", AppName: "kpi"}
	assert.Equal(t, "mongodb+srv://u:p@c.example.net/?retryWrites=true&w=majority&appName=kpi", m.ConnectionURI())

	m.URI = "mongodb://localhost:27017"
	assert.Equal(t, "mongodb://localhost:27017", m.ConnectionURI())
}

func TestWithContext_RequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	entry := WithContext(ctx)
	assert.Equal(t, "req-42", entry.Data["request_id"])

	assert.NotContains(t, WithContext(context.Background()).Data, "request_id")
}

func TestInitLogger(t *testing.T) {
	InitLogger(LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Logger.Formatter)

	InitLogger(LogConfig{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}
