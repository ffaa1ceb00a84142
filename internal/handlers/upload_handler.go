package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cv-parser/internal/models"
	"cv-parser/internal/services"
)

type UploadHandler struct {
	ingestor services.IngestionService
}

func NewUploadHandler(ingestor services.IngestionService) *UploadHandler {
	return &UploadHandler{
		ingestor: ingestor,
	}
}

// HandleUpload runs the full ingestion pipeline for one resume file. The
// request blocks until the candidate is committed or the pipeline aborts.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a resume as 'cv'.",
		})
	}

	candidate, data, err := h.ingestor.Ingest(c.UserContext(), file)
	if err != nil {
		return uploadErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Resume parsed successfully",
		"candidate": models.UploadResponse{
			ID:           candidate.ID.String(),
			Filename:     candidate.Filename,
			OriginalName: candidate.OriginalFileName,
			Candidate:    data,
		},
	})
}

// uploadErrorResponse maps pipeline failures to HTTP statuses. Validation
// failures are the client's fault, extraction and parsing failures are
// retryable, and a missing OCR engine is an operational outage.
func uploadErrorResponse(c *fiber.Ctx, err error) error {
	var invalid *services.InvalidUploadError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": invalid.Message,
			"field": invalid.Field,
		})
	}

	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF and DOCX files are supported.",
		})
	case errors.Is(err, services.ErrExtractionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Could not read any text from the uploaded file. Please re-upload a readable copy.",
		})
	case errors.Is(err, services.ErrInvalidStructuredResponse):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Parsing the resume failed. Please try again.",
		})
	case errors.Is(err, services.ErrOCRUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Text recognition is temporarily unavailable. Please try again later.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
