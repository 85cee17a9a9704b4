package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PIPELINE_ALLOWED_COMMANDS")
	os.Unsetenv("UPLOAD_ALLOWED_EXTENSIONS")
	os.Unsetenv("JWT_TTL_HOURS")

	cfg := Load()

	assert.Equal(t, 168, cfg.Auth.TokenTTLHours)
	assert.Contains(t, cfg.Pipeline.AllowedCommands, "basecall")
	assert.Contains(t, cfg.Pipeline.AllowedCommands, "blast")
	assert.Equal(t, []string{".pod5", ".csv", ".xlsx"}, cfg.Upload.AllowedExtensions)
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("PIPELINE_ALLOWED_COMMANDS", "echo, true")
	os.Setenv("UPLOAD_ALLOWED_EXTENSIONS", ".fastq")
	defer os.Unsetenv("PIPELINE_ALLOWED_COMMANDS")
	defer os.Unsetenv("UPLOAD_ALLOWED_EXTENSIONS")

	cfg := Load()

	assert.Equal(t, []string{"echo", "true"}, cfg.Pipeline.AllowedCommands)
	assert.Equal(t, []string{".fastq"}, cfg.Upload.AllowedExtensions)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
