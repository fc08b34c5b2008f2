package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "file:insights.db", cfg.DSN)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 4, cfg.SeriesWorkers)
	assert.Empty(t, cfg.SuggestionQuery)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("INSIGHTS_DRIVER", "postgres")
	t.Setenv("INSIGHTS_DSN", "postgres://localhost/insights?sslmode=disable")
	t.Setenv("INSIGHTS_QUERY_TIMEOUT", "2s")
	t.Setenv("INSIGHTS_SUGGESTION_QUERY", "SELECT suggestion, reason FROM sp_suggest_training(?)")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout)

	opts := cfg.DatabaseOptions(nil)
	assert.Equal(t, "postgres", opts.Driver)
	assert.Equal(t, 25, opts.MaxOpenConns)
}

func TestLoad_DotEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("INSIGHTS_HTTP_ADDR=:9090\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("INSIGHTS_HTTP_ADDR") })

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"driver", "INSIGHTS_DRIVER", "oracle"},
		{"timeout", "INSIGHTS_QUERY_TIMEOUT", "0s"},
		{"suggestion placeholders", "INSIGHTS_SUGGESTION_QUERY", "SELECT 'a', 'b'"},
		{"log level", "INSIGHTS_LOG_LEVEL", "loud"},
		{"log format", "INSIGHTS_LOG_FORMAT", "xml"},
		{"workers", "INSIGHTS_SERIES_WORKERS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}

	logger := cfg.NewLogger(&buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("range", "2024-01-01..2024-02-28").Info("report generated")
	assert.Contains(t, buf.String(), `"range":"2024-01-01..2024-02-28"`)
}
