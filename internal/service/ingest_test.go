package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"pdf-upload-server/internal/domain"
	apperrors "pdf-upload-server/pkg/errors"
)

func newTestIngestor(t *testing.T, maxSize int64) (*Ingestor, *TempStore) {
	t.Helper()
	store := NewTempStore(t.TempDir(), newMockServiceLogger())
	return NewIngestor(store, maxSize, newMockServiceLogger()), store
}

func TestIngest_StagesPDFPart(t *testing.T) {
	ingestor, store := newTestIngestor(t, 1<<20)

	content := []byte("%PDF-1.4 fake body")
	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "sample.pdf", mediaType: "application/pdf", content: content},
	})

	result, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	part := result.FirstPart()
	if part == nil {
		t.Fatal("expected a staged part")
	}
	if part.FieldName != "file" {
		t.Fatalf("expected field name file, got %s", part.FieldName)
	}
	if part.FileName != "sample.pdf" {
		t.Fatalf("expected file name sample.pdf, got %s", part.FileName)
	}
	if part.Size != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), part.Size)
	}

	staged, err := store.ReadAll(part.TempPath)
	if err != nil {
		t.Fatalf("failed to read staged file: %v", err)
	}
	if string(staged) != string(content) {
		t.Fatalf("staged content mismatch: %q", staged)
	}
}

func TestIngest_SanitizesUploadedName(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 1<<20)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "../../evil.pdf", mediaType: "application/pdf", content: []byte("x")},
	})

	result, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.FirstPart().FileName != "evil.pdf" {
		t.Fatalf("expected sanitized name evil.pdf, got %s", result.FirstPart().FileName)
	}
}

func TestIngest_AcceptsMediaTypeParameters(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 1<<20)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "sample.pdf", mediaType: "application/pdf; charset=binary", content: []byte("x")},
	})

	result, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if result.FirstPart().MediaType != "application/pdf" {
		t.Fatalf("expected parsed media type application/pdf, got %s", result.FirstPart().MediaType)
	}
}

func TestIngest_RejectsNonPDFPart(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 1<<20)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "notes.txt", mediaType: "text/plain", content: []byte("hello")},
	})

	result, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err == nil {
		t.Fatal("expected error for non-PDF part")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// Rejection happens before the byte stream is persisted.
	if len(result.Parts) != 0 {
		t.Fatalf("expected no staged parts, got %d", len(result.Parts))
	}
}

func TestIngest_RejectsOversizedPart(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 16)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "big.pdf", mediaType: "application/pdf", content: make([]byte, 64)},
	})

	result, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err == nil {
		t.Fatal("expected error for oversized part")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeSizeLimit) {
		t.Fatalf("expected size limit error, got %v", err)
	}
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge in chain, got %v", err)
	}

	// The partially staged file stays in the result so the caller's cleanup
	// can remove it.
	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 staged part for cleanup, got %d", len(result.Parts))
	}
}

func TestIngest_RequiresFilePart(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 1<<20)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "comment", content: []byte("just a field")},
	})

	_, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err == nil {
		t.Fatal("expected error when no file part is present")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIngest_CancelledContext(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 1<<20)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "sample.pdf", mediaType: "application/pdf", content: []byte("x")},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ingestor.Ingest(ctx, multipartReaderFor(body, boundary))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestClassifyCopyError(t *testing.T) {
	// A disk-write failure crosses the pipe already classified and must not
	// be relabeled as a body-read failure.
	writeErr := apperrors.NewIOError("failed to write temp file", errors.New("disk full"))
	if got := classifyCopyError(writeErr); got != writeErr {
		t.Fatalf("expected consumer error passed through unchanged, got %v", got)
	}

	bodyErr := classifyCopyError(errors.New("unexpected EOF"))
	if !apperrors.IsType(bodyErr, apperrors.ErrorTypeIO) {
		t.Fatalf("expected io error, got %v", bodyErr)
	}
	if !strings.Contains(bodyErr.Error(), "multipart stream") {
		t.Fatalf("expected body-read message, got %v", bodyErr)
	}

	maxErr := classifyCopyError(&http.MaxBytesError{Limit: 8})
	if !apperrors.IsType(maxErr, apperrors.ErrorTypeSizeLimit) {
		t.Fatalf("expected size limit error, got %v", maxErr)
	}
}

func TestIngest_StagedFilesAreOnDisk(t *testing.T) {
	ingestor, _ := newTestIngestor(t, 1<<20)

	body, boundary := buildMultipartBody(t, []testPart{
		{fieldName: "file", fileName: "a.pdf", mediaType: "application/pdf", content: []byte("aaa")},
		{fieldName: "backup", fileName: "b.pdf", mediaType: "application/pdf", content: []byte("bbb")},
	})

	result, err := ingestor.Ingest(context.Background(), multipartReaderFor(body, boundary))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 staged parts, got %d", len(result.Parts))
	}
	for _, part := range result.Parts {
		if _, err := os.Stat(part.TempPath); err != nil {
			t.Fatalf("expected staged file on disk at %s: %v", part.TempPath, err)
		}
	}
}
