package domain

import "errors"

// Domain errors
var (
	ErrNoFilePart    = errors.New("no file part in request")
	ErrInvalidPDF    = errors.New("invalid pdf")
	ErrEmptyText     = errors.New("no extractable text")
	ErrFileTooLarge  = errors.New("file exceeds maximum size")
	ErrStoreNotReady = errors.New("extraction store not initialized")
)
