package service

import (
	"os"
	"path/filepath"

	"pdf-upload-server/internal/domain"
	apperrors "pdf-upload-server/pkg/errors"

	"github.com/google/uuid"
)

// TempStore manages per-request staging files inside a process-wide temp
// directory. Paths are keyed by a random per-request token combined with the
// sanitized upload name, so concurrent uploads of identically named files
// never collide.
type TempStore struct {
	dir    string
	logger domain.Logger
}

// NewTempStore creates a temp store rooted at dir.
func NewTempStore(dir string, logger domain.Logger) *TempStore {
	return &TempStore{
		dir:    dir,
		logger: logger,
	}
}

// TempFile is an open staging file. It accepts writes until Finalize is
// called; after that only ReadAll/Remove via its path are valid.
type TempFile struct {
	path string
	file *os.File
}

// Path returns the file's location on disk.
func (t *TempFile) Path() string {
	return t.path
}

// Write appends a chunk to the staging file.
func (t *TempFile) Write(p []byte) (int, error) {
	return t.file.Write(p)
}

// Finalize flushes pending writes to disk and closes the file. The file is
// only considered durably written once Finalize returns nil.
func (t *TempFile) Finalize() error {
	if err := t.file.Sync(); err != nil {
		t.file.Close()
		return apperrors.NewIOError("failed to flush temp file", err)
	}
	if err := t.file.Close(); err != nil {
		return apperrors.NewIOError("failed to close temp file", err)
	}
	return nil
}

// Create allocates a unique path under the store's directory and opens it for
// exclusive write.
func (s *TempStore) Create(name string) (*TempFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, apperrors.NewIOError("temp directory not writable", err)
	}

	path := filepath.Join(s.dir, uuid.NewString()+"_"+name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, apperrors.NewIOError("failed to create temp file", err)
	}

	return &TempFile{path: path, file: file}, nil
}

// ReadAll reads a finalized staging file fully into memory.
func (s *TempStore) ReadAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewIOError("failed to read temp file", err)
	}
	return data, nil
}

// Remove deletes a staging file. Best-effort and idempotent: failures are
// logged, never surfaced, so it is safe to call from cleanup on every exit
// path.
func (s *TempStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove temp file", "path", path, "error", err)
	}
}
