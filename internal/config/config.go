package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds session token signing settings.
// TokenTTLHours defaults to 168 (7 days), the session lifetime the lab
// frontend expects.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// PipelineConfig holds settings for dispatching external pipeline tools.
// AllowedCommands is the set of executable names the dispatcher may run;
// anything else is rejected before a process is spawned.
type PipelineConfig struct {
	AllowedCommands []string
}

// UploadConfig holds constraints for sequencing file uploads.
// AllowedExtensions are matched case-insensitively against the original
// filename suffix.
type UploadConfig struct {
	AllowedExtensions []string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Pipeline PipelineConfig
	Upload   UploadConfig
}

// defaultCommands are the stages of the sequencing toolchain installed on
// the analysis host. Overridable via PIPELINE_ALLOWED_COMMANDS
// (comma-separated).
var defaultCommands = []string{
	"basecall", "demux", "filter", "trim", "quality",
	"denoise", "chimera", "cluster", "polish_consensus",
	"taxonomy", "blast",
}

// defaultExtensions: raw nanopore signal container plus the two spreadsheet
// formats used for sample sheets.
var defaultExtensions = []string{".pod5", ".csv", ".xlsx"}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvInt("JWT_TTL_HOURS", 168),
		},
		Pipeline: PipelineConfig{
			AllowedCommands: getEnvList("PIPELINE_ALLOWED_COMMANDS", defaultCommands),
		},
		Upload: UploadConfig{
			AllowedExtensions: getEnvList("UPLOAD_ALLOWED_EXTENSIONS", defaultExtensions),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
