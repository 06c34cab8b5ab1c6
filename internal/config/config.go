package config

import (
	"os"
	"strconv"

	"pdf-upload-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort       string
	TempPath         string
	MaxFileSize      int64
	LogLevel         string
	AllowedOrigin    string
	SupabaseURL      string
	SupabaseKey      string
	ExtractionsTable string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:       getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		TempPath:         getEnvOrDefault("TEMP_PATH", os.TempDir()),
		MaxFileSize:      getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024), // 10MiB default
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		AllowedOrigin:    getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:8000"),
		SupabaseURL:      getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:      getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		ExtractionsTable: getEnvOrDefault("EXTRACTIONS_TABLE", "extractions"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetTempPath returns the directory used to stage uploads
func (c *AppConfig) GetTempPath() string {
	return c.TempPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAllowedOrigin returns the single origin allowed by CORS
func (c *AppConfig) GetAllowedOrigin() string {
	return c.AllowedOrigin
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetExtractionsTable returns the table extraction records are written to
func (c *AppConfig) GetExtractionsTable() string {
	return c.ExtractionsTable
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
