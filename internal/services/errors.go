package services

import (
	"errors"
	"fmt"
)

// Ingestion failure taxonomy. Every failure past shell creation deletes the
// shell; none of these is fatal to the process.
var (
	// ErrUnsupportedFormat: file extension outside {.pdf, .docx}.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrExtractionFailed: the document could not be read or yielded no text.
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrOCRUnavailable: the optical recognition engine could not run.
	ErrOCRUnavailable = errors.New("ocr engine unavailable")
	// ErrMissingFile: no file was resolvable after the shell was saved.
	ErrMissingFile = errors.New("uploaded file missing")
	// ErrInvalidStructuredResponse: the parsing service's output failed to
	// decode or violated the resume schema.
	ErrInvalidStructuredResponse = errors.New("invalid structured response")
)

// InvalidUploadError is a field-level validation failure reported before any
// record or file exists. Surfaced to the form, never as an exception.
type InvalidUploadError struct {
	Field   string
	Message string
}

func (e *InvalidUploadError) Error() string {
	return fmt.Sprintf("invalid upload: %s %s", e.Field, e.Message)
}
