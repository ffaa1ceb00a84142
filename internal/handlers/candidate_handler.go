package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-parser/internal/models"
	"cv-parser/internal/repositories"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewCandidateHandler(candidateRepo repositories.CandidateRepository) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
	}
}

// HandleGetCandidate returns one committed candidate's structured sections.
// Provisional shells are never visible here.
func (h *CandidateHandler) HandleGetCandidate(c *fiber.Ctx) error {
	idParam := c.Params("id")
	candidateID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(models.CandidateResponse{
		ID:             candidate.ID.String(),
		PersonalInfo:   json.RawMessage(candidate.PersonalInfo),
		Education:      json.RawMessage(candidate.Education),
		WorkExperience: json.RawMessage(candidate.WorkExperience),
		Skills:         json.RawMessage(candidate.Skills),
		Projects:       json.RawMessage(candidate.Projects),
		Certificates:   json.RawMessage(candidate.Certificates),
		OriginalName:   candidate.OriginalFileName,
		CreatedAt:      candidate.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      candidate.UpdatedAt.Format(time.RFC3339),
	})
}
