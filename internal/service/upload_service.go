package service

import (
	"context"
	"mime/multipart"
	"time"

	"pdf-upload-server/internal/domain"
	apperrors "pdf-upload-server/pkg/errors"
)

// UploadService drives the upload pipeline: ingest the multipart stream to a
// staging file, read it back, extract the text, optionally persist the result.
type UploadService struct {
	ingestor  *Ingestor
	store     *TempStore
	extractor domain.TextExtractor
	repo      domain.ExtractionRepository // nil when persistence is not configured
	logger    domain.Logger
}

// NewUploadService creates a new upload service. repo may be nil, in which
// case extraction results are returned to the caller but not stored.
func NewUploadService(
	ingestor *Ingestor,
	store *TempStore,
	extractor domain.TextExtractor,
	repo domain.ExtractionRepository,
	logger domain.Logger,
) *UploadService {
	return &UploadService{
		ingestor:  ingestor,
		store:     store,
		extractor: extractor,
		repo:      repo,
		logger:    logger,
	}
}

// ProcessUpload handles one upload request end to end. Every staging file
// created during ingestion is removed before ProcessUpload returns, on success
// and on every failure path.
func (s *UploadService) ProcessUpload(ctx context.Context, userID string, reader *multipart.Reader) (*domain.UploadResult, error) {
	result, ingErr := s.ingestor.Ingest(ctx, reader)
	defer func() {
		for _, part := range result.Parts {
			s.store.Remove(part.TempPath)
		}
	}()
	if ingErr != nil {
		return nil, ingErr
	}

	part := result.FirstPart()

	data, err := s.store.ReadAll(part.TempPath)
	if err != nil {
		return nil, err
	}

	doc, err := s.extractor.Extract(data)
	if err != nil {
		return nil, err
	}

	persisted := false
	if s.repo != nil {
		record := &domain.ExtractionRecord{
			FileID:      part.FieldName,
			FileName:    part.FileName,
			UserID:      userID,
			CompletedAt: time.Now().UTC(),
			FileText:    doc.Text,
		}
		if err := s.repo.Save(ctx, record); err != nil {
			return nil, apperrors.NewStorageError("failed to persist extraction record", err)
		}
		persisted = true
	}

	s.logger.Info("Upload processed",
		"user_id", userID,
		"file_name", part.FileName,
		"bytes", part.Size,
		"pages", len(doc.Pages),
		"chars", len(doc.Text),
		"persisted", persisted,
	)

	return &domain.UploadResult{
		FileName:  part.FileName,
		UserID:    userID,
		PageCount: len(doc.Pages),
		Persisted: persisted,
	}, nil
}
