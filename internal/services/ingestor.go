package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"cv-parser/internal/models"
	"cv-parser/internal/repositories"
)

// IngestionService drives one upload through validation, text extraction,
// structured parsing and persistence. Either every stage succeeds and a
// committed candidate becomes visible, or the provisional shell and its
// stored file are removed again; no partial record survives.
type IngestionService interface {
	Ingest(ctx context.Context, file *multipart.FileHeader) (*models.Candidate, *models.ResumeData, error)
}

type ingestionService struct {
	candidateRepo repositories.CandidateRepository
	storage       StorageService
	extractor     TextExtractor
	parser        StructuredParser
	schema        *jsonschema.Schema
	maxFileSize   int64
}

func NewIngestionService(
	candidateRepo repositories.CandidateRepository,
	storage StorageService,
	extractor TextExtractor,
	parser StructuredParser,
	maxFileSize int64,
) (IngestionService, error) {
	schema, err := CompileResumeSchema()
	if err != nil {
		return nil, err
	}
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	return &ingestionService{
		candidateRepo: candidateRepo,
		storage:       storage,
		extractor:     extractor,
		parser:        parser,
		schema:        schema,
		maxFileSize:   maxFileSize,
	}, nil
}

// Ingest implements IngestionService.
func (s *ingestionService) Ingest(ctx context.Context, file *multipart.FileHeader) (*models.Candidate, *models.ResumeData, error) {
	// Form-level validation, before any record or file exists.
	if err := s.validateUpload(file); err != nil {
		return nil, nil, err
	}

	// Store the file and create the provisional shell; the shell exists
	// solely to hold a durable file path while the pipeline runs.
	filename, filePath, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save upload: %w", err)
	}

	candidate := &models.Candidate{
		ID:               uuid.New(),
		Status:           models.StatusProvisional,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
	}
	if err := s.candidateRepo.Create(candidate); err != nil {
		s.removeFile(filename)
		return nil, nil, fmt.Errorf("failed to create candidate record: %w", err)
	}

	if candidate.FilePath == "" || !fileExists(candidate.FilePath) {
		s.abort(candidate)
		return nil, nil, ErrMissingFile
	}

	// Text extraction, with the per-page OCR fallback inside.
	text, err := s.extractor.Extract(ctx, candidate.FilePath)
	if err != nil {
		s.abort(candidate)
		return nil, nil, err
	}

	// Structured parsing, then decode and schema validation of the result.
	raw, err := s.parser.Parse(ctx, text)
	if err != nil {
		s.abort(candidate)
		return nil, nil, fmt.Errorf("unexpected parsing error: %w", err)
	}

	data, err := s.decodeResume(raw)
	if err != nil {
		s.abort(candidate)
		return nil, nil, err
	}

	// Commit; only now does the record become visible to readers.
	if err := s.candidateRepo.Commit(candidate.ID, data); err != nil {
		s.abort(candidate)
		return nil, nil, fmt.Errorf("failed to commit candidate: %w", err)
	}

	candidate.Status = models.StatusCommitted
	return candidate, data, nil
}

func (s *ingestionService) validateUpload(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return &InvalidUploadError{
			Field:   "uploaded_file",
			Message: "Only PDF and DOCX files are supported.",
		}
	}
	if file.Size > s.maxFileSize {
		return &InvalidUploadError{
			Field:   "uploaded_file",
			Message: fmt.Sprintf("File size should be less than %d MB.", s.maxFileSize/(1024*1024)),
		}
	}
	return nil
}

func (s *ingestionService) decodeResume(raw string) (*models.ResumeData, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructuredResponse, err)
	}
	if err := s.schema.Validate(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructuredResponse, err)
	}

	var data models.ResumeData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructuredResponse, err)
	}
	return &data, nil
}

// abort deletes the provisional shell and its stored file. Cleanup failures
// are logged; the original stage error is what the caller sees.
func (s *ingestionService) abort(candidate *models.Candidate) {
	if err := s.candidateRepo.Delete(candidate.ID); err != nil {
		log.Printf("⚠️  Failed to delete provisional candidate %s: %v\n", candidate.ID, err)
	}
	s.removeFile(candidate.Filename)
}

func (s *ingestionService) removeFile(filename string) {
	if filename == "" {
		return
	}
	if err := s.storage.DeleteFile(filename); err != nil {
		log.Printf("⚠️  Failed to delete stored file %s: %v\n", filename, err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
