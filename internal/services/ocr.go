package services

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCRClient turns a rendered page image into text. Injected into the
// extractor so tests can substitute a fake for the Tesseract engine.
type OCRClient interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

type tesseractClient struct {
	language string
}

func NewTesseractClient(language string) OCRClient {
	if language == "" {
		language = "eng"
	}
	return &tesseractClient{language: language}
}

// Recognize implements OCRClient. A fresh gosseract client per call keeps
// this safe under concurrent requests.
func (t *tesseractClient) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("failed to set ocr language: %w", err)
	}
	// Resumes are single-column text; PSM 4 keeps reading order intact.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_COLUMN); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load page image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}
	return text, nil
}
