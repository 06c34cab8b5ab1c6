package domain

import "time"

// ExtractedDocument is the result of pulling the text layer out of a PDF.
type ExtractedDocument struct {
	// Pages holds each page's text in ascending page order (index 0 = page 1).
	Pages []string `json:"pages"`
	// Text is the whole-document text: pages joined by a single space.
	Text string `json:"text"`
}

// ExtractionRecord is the row persisted per successful extraction. Records are
// namespaced by user and keyed by file name; re-uploading the same name
// overwrites the previous record.
type ExtractionRecord struct {
	FileID      string    `json:"file_id"`
	FileName    string    `json:"file_name"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
	FileText    string    `json:"file_text"`
}

// UploadResult is what the upload service reports back to the HTTP layer.
// The extracted text is deliberately not included; it is only persisted.
type UploadResult struct {
	FileName  string
	UserID    string
	PageCount int
	Persisted bool
}
