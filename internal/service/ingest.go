package service

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"pdf-upload-server/internal/domain"
	apperrors "pdf-upload-server/pkg/errors"

	"golang.org/x/sync/errgroup"
)

const pdfMediaType = "application/pdf"

// IngestedPart describes one file part staged to disk.
type IngestedPart struct {
	FieldName string
	FileName  string // sanitized
	MediaType string
	TempPath  string
	Size      int64
}

// IngestResult collects the staged parts of one request. The caller owns
// cleanup of every TempPath, including when Ingest returns an error.
type IngestResult struct {
	Parts []*IngestedPart
}

// FirstPart returns the first staged file part, or nil if none was found.
func (r *IngestResult) FirstPart() *IngestedPart {
	if len(r.Parts) == 0 {
		return nil
	}
	return r.Parts[0]
}

// Ingestor streams multipart file parts into temp storage.
type Ingestor struct {
	store   *TempStore
	maxSize int64
	logger  domain.Logger
}

// NewIngestor creates an ingestor writing through store, rejecting parts
// larger than maxSize bytes.
func NewIngestor(store *TempStore, maxSize int64, logger domain.Logger) *Ingestor {
	return &Ingestor{
		store:   store,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Ingest consumes a multipart/form-data stream and pipes each file part into
// a newly created staging file as chunks arrive, never buffering a whole
// upload in memory. Each part's disk write runs behind an io.Pipe and is
// tracked as a write-completion future; Ingest returns only after every
// future has resolved, so a partial write is never reported as complete.
//
// Parts with a media type other than application/pdf are rejected before any
// bytes are persisted. Parts exceeding the size cap fail the request rather
// than being truncated.
func (ing *Ingestor) Ingest(ctx context.Context, reader *multipart.Reader) (*IngestResult, error) {
	result := &IngestResult{}
	var writes errgroup.Group

	ingErr := func() error {
		for {
			if err := ctx.Err(); err != nil {
				return apperrors.NewIOError("request cancelled during upload", err)
			}

			part, err := reader.NextPart()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return wrapBodyError(err)
			}

			if part.FileName() == "" {
				// Plain form field, not a file. Drain and move on.
				_, _ = io.Copy(io.Discard, part)
				part.Close()
				continue
			}

			// Parse rather than compare raw: a declared parameter such as
			// "application/pdf; charset=binary" is still a PDF.
			contentType := strings.TrimSpace(part.Header.Get("Content-Type"))
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != pdfMediaType {
				part.Close()
				return apperrors.NewValidationError("Invalid PDF", "media type "+contentType)
			}

			fileName := SanitizeFileName(part.FileName())
			tmp, err := ing.store.Create(fileName)
			if err != nil {
				part.Close()
				return err
			}

			entry := &IngestedPart{
				FieldName: part.FormName(),
				FileName:  fileName,
				MediaType: mediaType,
				TempPath:  tmp.Path(),
			}
			result.Parts = append(result.Parts, entry)

			pr, pw := io.Pipe()
			writes.Go(func() error {
				if _, err := io.Copy(tmp, pr); err != nil {
					// Classify before closing the pipe so the producer sees
					// a write failure, not a generic broken pipe.
					writeErr := apperrors.NewIOError("failed to write temp file", err)
					pr.CloseWithError(writeErr)
					_ = tmp.Finalize()
					return writeErr
				}
				return tmp.Finalize()
			})

			// maxSize+1 so an oversized part is detected instead of silently
			// truncated at the boundary.
			limited := io.LimitReader(part, ing.maxSize+1)
			n, copyErr := io.Copy(pw, limited)
			entry.Size = n
			part.Close()

			if copyErr != nil {
				pw.CloseWithError(copyErr)
				return classifyCopyError(copyErr)
			}
			if n > ing.maxSize {
				pw.CloseWithError(domain.ErrFileTooLarge)
				return apperrors.NewSizeLimitError("File too large", domain.ErrFileTooLarge)
			}
			if err := pw.Close(); err != nil {
				return apperrors.NewIOError("failed to finish temp file write", err)
			}

			ing.logger.Debug("Staged file part", "field", entry.FieldName, "file_name", fileName, "bytes", n)
		}
	}()

	writeErr := writes.Wait()

	if ingErr != nil {
		return result, ingErr
	}
	if writeErr != nil {
		return result, writeErr
	}
	if len(result.Parts) == 0 {
		return result, apperrors.NewValidationError("File is required", domain.ErrNoFilePart.Error())
	}
	return result, nil
}

// classifyCopyError separates disk-write failures, which arrive through the
// pipe already classified by the consumer goroutine, from failures reading
// the body itself.
func classifyCopyError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return wrapBodyError(err)
}

// wrapBodyError classifies errors surfaced while reading the request body.
func wrapBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.NewSizeLimitError("File too large", err)
	}
	return apperrors.NewIOError("failed to read multipart stream", err)
}
