package repository

import (
	"context"
	"fmt"
	"strings"

	"pdf-upload-server/internal/domain"
)

// SupabaseExtractionRepository implements domain.ExtractionRepository on top
// of a Supabase (PostgREST) table. Rows are partitioned by user_id and keyed
// by file_name; saving an existing key overwrites the previous row.
type SupabaseExtractionRepository struct {
	supabaseClient domain.SupabaseClient
	table          string
	logger         domain.Logger
}

// NewSupabaseExtractionRepository creates a new Supabase extraction repository
func NewSupabaseExtractionRepository(supabaseClient domain.SupabaseClient, table string, logger domain.Logger) domain.ExtractionRepository {
	return &SupabaseExtractionRepository{
		supabaseClient: supabaseClient,
		table:          table,
		logger:         logger,
	}
}

// Save upserts an extraction record under the user's namespace.
func (r *SupabaseExtractionRepository) Save(ctx context.Context, record *domain.ExtractionRecord) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return domain.ErrStoreNotReady
	}

	row := map[string]interface{}{
		"file_id":      record.FileID,
		"file_name":    record.FileName,
		"user_id":      record.UserID,
		"completed_at": record.CompletedAt,
		// PDF text layers can carry NUL bytes, which PostgreSQL rejects
		// (22P05) inside text columns.
		"file_text": stripNulBytes(record.FileText),
	}

	// Upsert on (user_id, file_name): re-uploading the same name overwrites.
	_, _, err := client.From(r.table).Insert(row, true, "user_id,file_name", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to save extraction record", err,
			"user_id", record.UserID,
			"file_name", record.FileName,
			"text_length", len(record.FileText),
		)
		return fmt.Errorf("failed to save extraction record: %w", err)
	}

	r.logger.Debug("Extraction record saved", "user_id", record.UserID, "file_name", record.FileName)
	return nil
}

// stripNulBytes removes NUL characters before the row is serialized.
func stripNulBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
