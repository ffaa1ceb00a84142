package services

import (
	"context"
	"encoding/json"
	"fmt"

	"cv-parser/internal/repositories"
)

// ChatService answers free-form prompts over every committed candidate's
// structured data. A thin pass-through to the completion model; no session
// state is kept server-side.
type ChatService interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

type chatService struct {
	candidateRepo repositories.CandidateRepository
	gemini        GeminiService
	maxRetries    int
}

func NewChatService(
	candidateRepo repositories.CandidateRepository,
	gemini GeminiService,
	maxRetries int,
) ChatService {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &chatService{
		candidateRepo: candidateRepo,
		gemini:        gemini,
		maxRetries:    maxRetries,
	}
}

// Answer implements ChatService.
func (s *chatService) Answer(ctx context.Context, prompt string) (string, error) {
	fields, err := s.candidateRepo.ListParsed()
	if err != nil {
		return "", fmt.Errorf("failed to load candidate data: %w", err)
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate data: %w", err)
	}

	return s.gemini.GenerateTextWithRetry(ctx, BuildChatPrompt(prompt, string(encoded)), 0.7, s.maxRetries)
}
