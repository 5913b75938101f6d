package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  base_path: /api
  cors_origins:
    - https://songs.example.com
database:
  driver: memory
  seed_file: ./normalized_songs.csv
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, []string{"https://songs.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "./normalized_songs.csv", cfg.Database.SeedFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFileEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/songs")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	cfg, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/songs", cfg.Database.URL)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"port out of range", "server:\n  port: 70000\n"},
		{"postgres without url", "database:\n  driver: postgres\n  url: \"\"\n"},
		{"bad base path", "server:\n  base_path: api\n"},
		{"bad log format", "logging:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := LoadFile(path)

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "database.url", envTransform("DATABASE_URL"))
	assert.Equal(t, "database.max_conns", envTransform("DATABASE_MAX_CONNS"))
	assert.Equal(t, "rate_limit.max", envTransform("RATE_LIMIT_MAX"))
	assert.Equal(t, "logging.level", envTransform("LOG_LEVEL"))
	assert.Equal(t, "", envTransform("HOME"))
}
