package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"cv-parser/internal/models"
)

type fakeCandidateRepo struct {
	created   []*models.Candidate
	committed map[uuid.UUID]*models.ResumeData
	deleted   []uuid.UUID
	createErr error
	commitErr error
}

func (f *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, candidate)
	return nil
}

func (f *fakeCandidateRepo) Commit(id uuid.UUID, data *models.ResumeData) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	if f.committed == nil {
		f.committed = make(map[uuid.UUID]*models.ResumeData)
	}
	f.committed[id] = data
	return nil
}

func (f *fakeCandidateRepo) Delete(id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCandidateRepo) ListParsed() ([]models.CandidateFields, error) {
	return nil, nil
}

func (f *fakeCandidateRepo) CountCommitted() (int64, error) {
	return int64(len(f.committed)), nil
}

// assertCommittedCount checks the visible record count, the invariant a
// failed ingestion must leave untouched.
func assertCommittedCount(t *testing.T, repo *fakeCandidateRepo, want int64) {
	t.Helper()
	count, err := repo.CountCommitted()
	if err != nil {
		t.Fatalf("CountCommitted returned error: %v", err)
	}
	if count != want {
		t.Errorf("committed count = %d, want %d", count, want)
	}
}

type fakeStorage struct {
	savedPath string
	saveErr   error
	saves     int
	deleted   []string
}

func (f *fakeStorage) SaveFile(file *multipart.FileHeader) (string, string, error) {
	f.saves++
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	return "cv_test" + filepath.Ext(file.Filename), f.savedPath, nil
}

func (f *fakeStorage) GetFilePath(filename string) string {
	return f.savedPath
}

func (f *fakeStorage) DeleteFile(filename string) error {
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeStorage) EnsureUploadDir() error {
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (string, error) {
	return f.text, f.err
}

type fakeParser struct {
	raw   string
	err   error
	calls int
}

func (f *fakeParser) Parse(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.raw, f.err
}

// storedFile creates a real file on disk so the pipeline's existence check
// passes.
func storedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv_test.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("failed to create stored file: %v", err)
	}
	return path
}

func uploadHeader(filename string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: filename, Size: size}
}

func newTestIngestor(t *testing.T, repo *fakeCandidateRepo, storage *fakeStorage, extractor *fakeExtractor, parser *fakeParser) IngestionService {
	t.Helper()
	ingestor, err := NewIngestionService(repo, storage, extractor, parser, 5*1024*1024)
	if err != nil {
		t.Fatalf("failed to build ingestion service: %v", err)
	}
	return ingestor
}

func TestIngestRejectsUnsupportedExtension(t *testing.T) {
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{}
	ingestor := newTestIngestor(t, repo, storage, &fakeExtractor{}, &fakeParser{})

	_, _, err := ingestor.Ingest(context.Background(), uploadHeader("resume.txt", 1024))

	var invalid *InvalidUploadError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidUploadError, got %v", err)
	}
	if storage.saves != 0 {
		t.Error("file was saved despite failed validation")
	}
	if len(repo.created) != 0 {
		t.Error("shell record was created despite failed validation")
	}
}

func TestIngestRejectsOversizedFile(t *testing.T) {
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{}
	ingestor := newTestIngestor(t, repo, storage, &fakeExtractor{}, &fakeParser{})

	_, _, err := ingestor.Ingest(context.Background(), uploadHeader("resume.pdf", 6*1024*1024))

	var invalid *InvalidUploadError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidUploadError, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("shell record was created for oversized file")
	}
}

func TestIngestAbortsWhenStoredFileMissing(t *testing.T) {
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{savedPath: filepath.Join(t.TempDir(), "gone.pdf")}
	ingestor := newTestIngestor(t, repo, storage, &fakeExtractor{}, &fakeParser{})

	_, _, err := ingestor.Ingest(context.Background(), uploadHeader("resume.pdf", 1024))

	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Errorf("expected 1 shell deletion, got %d", len(repo.deleted))
	}
}

func TestIngestAbortsOnExtractionFailure(t *testing.T) {
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{savedPath: storedFile(t)}
	extractor := &fakeExtractor{err: fmt.Errorf("%w: no pages", ErrExtractionFailed)}
	parser := &fakeParser{}
	ingestor := newTestIngestor(t, repo, storage, extractor, parser)

	_, _, err := ingestor.Ingest(context.Background(), uploadHeader("resume.pdf", 1024))

	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if len(repo.created) != 1 || len(repo.deleted) != 1 {
		t.Fatalf("expected the shell to be created then deleted, got created=%d deleted=%d",
			len(repo.created), len(repo.deleted))
	}
	if repo.deleted[0] != repo.created[0].ID {
		t.Error("deleted a different record than the created shell")
	}
	if len(storage.deleted) != 1 {
		t.Errorf("expected the stored file to be removed, got %d deletions", len(storage.deleted))
	}
	if parser.calls != 0 {
		t.Error("parser was invoked after extraction failed")
	}
	assertCommittedCount(t, repo, 0)
}

func TestIngestAbortsOnUndecodableParserOutput(t *testing.T) {
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{savedPath: storedFile(t)}
	parser := &fakeParser{raw: "not json {"}
	ingestor := newTestIngestor(t, repo, storage, &fakeExtractor{text: "resume text"}, parser)

	_, _, err := ingestor.Ingest(context.Background(), uploadHeader("resume.pdf", 1024))

	if !errors.Is(err, ErrInvalidStructuredResponse) {
		t.Fatalf("expected ErrInvalidStructuredResponse, got %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Error("shell was not deleted after undecodable parser output")
	}
	if len(repo.committed) != 0 {
		t.Error("candidate was committed despite undecodable parser output")
	}
	assertCommittedCount(t, repo, 0)
}

func TestIngestAbortsOnSchemaViolation(t *testing.T) {
	// Valid JSON that is missing a required section must be rejected, never
	// defaulted.
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{savedPath: storedFile(t)}
	parser := &fakeParser{raw: `{"personal_info":{"name":"A","email":"a@b.c","phone":"1","address":"x"},"education":[],"work_experience":[],"projects":[],"certificates":[]}`}
	ingestor := newTestIngestor(t, repo, storage, &fakeExtractor{text: "resume text"}, parser)

	_, _, err := ingestor.Ingest(context.Background(), uploadHeader("resume.pdf", 1024))

	if !errors.Is(err, ErrInvalidStructuredResponse) {
		t.Fatalf("expected ErrInvalidStructuredResponse, got %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Error("shell was not deleted after schema violation")
	}
	assertCommittedCount(t, repo, 0)
}

func TestIngestCommitsOnSuccess(t *testing.T) {
	repo := &fakeCandidateRepo{}
	storage := &fakeStorage{savedPath: storedFile(t)}
	parser := &fakeParser{raw: validResumeJSON}
	ingestor := newTestIngestor(t, repo, storage, &fakeExtractor{text: "resume text"}, parser)

	candidate, data, err := ingestor.Ingest(context.Background(), uploadHeader("resume.pdf", 1024))
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	if candidate.Status != models.StatusCommitted {
		t.Errorf("candidate status = %q, want %q", candidate.Status, models.StatusCommitted)
	}
	if candidate.OriginalFileName != "resume.pdf" {
		t.Errorf("original filename = %q", candidate.OriginalFileName)
	}

	committed, ok := repo.committed[candidate.ID]
	if !ok {
		t.Fatal("candidate was not committed in the repository")
	}
	if committed.PersonalInfo.Name != "Ada Lovelace" {
		t.Errorf("committed name = %q", committed.PersonalInfo.Name)
	}
	if data.PersonalInfo.Email != "ada@example.com" {
		t.Errorf("returned email = %q", data.PersonalInfo.Email)
	}
	if len(data.Skills) != 2 {
		t.Errorf("expected 2 skills, got %d", len(data.Skills))
	}

	if len(repo.deleted) != 0 {
		t.Error("shell was deleted on the success path")
	}
	if len(storage.deleted) != 0 {
		t.Error("stored file was deleted on the success path")
	}
	assertCommittedCount(t, repo, 1)
}
