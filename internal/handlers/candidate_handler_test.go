package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cv-parser/internal/models"
)

type fakeCandidateRepo struct {
	candidate *models.Candidate
}

func (f *fakeCandidateRepo) Create(candidate *models.Candidate) error { return nil }

func (f *fakeCandidateRepo) Commit(id uuid.UUID, data *models.ResumeData) error { return nil }

func (f *fakeCandidateRepo) Delete(id uuid.UUID) error { return nil }

func (f *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	if f.candidate == nil || f.candidate.ID != id {
		return nil, errors.New("candidate not found")
	}
	return f.candidate, nil
}

func (f *fakeCandidateRepo) ListParsed() ([]models.CandidateFields, error) { return nil, nil }

func (f *fakeCandidateRepo) CountCommitted() (int64, error) { return 0, nil }

func newCandidateApp(repo *fakeCandidateRepo) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/candidates/:id", NewCandidateHandler(repo).HandleGetCandidate)
	return app
}

func TestHandleGetCandidateInvalidID(t *testing.T) {
	app := newCandidateApp(&fakeCandidateRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/candidates/not-a-uuid", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}

func TestHandleGetCandidateNotFound(t *testing.T) {
	app := newCandidateApp(&fakeCandidateRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/candidates/"+uuid.NewString(), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
}

func TestHandleGetCandidateReturnsSections(t *testing.T) {
	id := uuid.New()
	repo := &fakeCandidateRepo{
		candidate: &models.Candidate{
			ID:               id,
			Status:           models.StatusCommitted,
			OriginalFileName: "resume.pdf",
			PersonalInfo:     datatypes.JSON(`{"name":"Ada Lovelace","email":"ada@example.com","phone":"1","address":"London"}`),
			Education:        datatypes.JSON(`[]`),
			WorkExperience:   datatypes.JSON(`[]`),
			Skills:           datatypes.JSON(`["Mathematics"]`),
			Projects:         datatypes.JSON(`[]`),
			Certificates:     datatypes.JSON(`[]`),
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		},
	}
	app := newCandidateApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/candidates/"+id.String(), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var decoded models.CandidateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != id.String() {
		t.Errorf("id = %q, want %q", decoded.ID, id)
	}
	if decoded.OriginalName != "resume.pdf" {
		t.Errorf("original name = %q", decoded.OriginalName)
	}
	if string(decoded.Skills) != `["Mathematics"]` {
		t.Errorf("skills passed through altered: %s", decoded.Skills)
	}
}
