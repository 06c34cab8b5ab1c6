package domain

import (
	"context"
	"mime/multipart"

	"github.com/supabase-community/supabase-go"
)

// TextExtractor turns a complete PDF byte buffer into an ExtractedDocument.
type TextExtractor interface {
	Extract(data []byte) (*ExtractedDocument, error)
}

// UploadService defines the use-case operation behind the upload endpoint.
type UploadService interface {
	ProcessUpload(ctx context.Context, userID string, reader *multipart.Reader) (*UploadResult, error)
}

// ExtractionRepository defines persistence for extraction records. Save
// overwrites any existing record with the same user ID and file name.
type ExtractionRepository interface {
	Save(ctx context.Context, record *ExtractionRecord) error
}

// SupabaseClient wraps the Supabase connection used by repositories.
type SupabaseClient interface {
	Initialize() error
	DB() *supabase.Client
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetTempPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetAllowedOrigin() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetExtractionsTable() string
}
