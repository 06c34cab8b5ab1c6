// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"pdf-upload-server/internal/domain"
	apperrors "pdf-upload-server/pkg/errors"
)

// Headroom on top of the file size cap for multipart boundaries and headers.
// The per-part limit inside the ingestor enforces the real file cap.
const multipartOverhead = 1 << 20

// UploadHandler handles the PDF upload endpoint.
type UploadHandler struct {
	uploadService domain.UploadService
	maxFileSize   int64
	allowedOrigin string
	logger        domain.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService domain.UploadService, maxFileSize int64, allowedOrigin string, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

// Upload handles POST /upload. Validation order: method, content type, user
// identifier, then the multipart body. Validation failures short-circuit
// before any file I/O happens.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", h.allowedOrigin)

	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", http.MethodPost)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, User-ID")
		w.Header().Set("Access-Control-Max-Age", "3600")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Invalid method")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "multipart/form-data") {
		writeMessage(w, http.StatusBadRequest, "Invalid content-type")
		return
	}

	userID := strings.TrimSpace(r.Header.Get("User-ID"))
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Missing user ID")
		return
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" || params["boundary"] == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid content-type")
		return
	}

	// Read the body as a stream; MaxBytesReader bounds the whole payload so
	// an oversized upload fails instead of being buffered.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	reader := multipart.NewReader(r.Body, params["boundary"])

	result, err := h.uploadService.ProcessUpload(r.Context(), userID, reader)
	if err != nil {
		h.writeUploadError(w, userID, err)
		return
	}

	writeResponse(w, http.StatusCreated, map[string]string{
		"fileName": result.FileName,
		"userID":   result.UserID,
	}, "File processed successfully")
}

// writeUploadError maps pipeline errors onto the response table: 4xx errors
// keep their client-facing message, 5xx errors collapse to a generic one.
func (h *UploadHandler) writeUploadError(w http.ResponseWriter, userID string, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeMessage(w, http.StatusBadRequest, "File too large")
		return
	}

	status := apperrors.GetStatusCode(err)
	message := "Processing failed"

	var appErr *apperrors.AppError
	if status < http.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Upload processing failed", err, "user_id", userID)
	} else {
		h.logger.Warn("Upload rejected", "user_id", userID, "reason", err.Error())
	}

	writeMessage(w, status, message)
}
