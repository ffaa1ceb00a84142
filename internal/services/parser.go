package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StructuredParser issues one schema-constrained completion request and
// returns the raw JSON text of the response. No retries and no local
// repair: decoding the string is the caller's concern.
type StructuredParser interface {
	Parse(ctx context.Context, text string) (string, error)
}

type openAIParser struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewOpenAIParser(apiKey, baseURL, model string, timeout time.Duration) StructuredParser {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-2024-08-06"
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &openAIParser{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
	}
}

// Parse implements StructuredParser.
func (p *openAIParser) Parse(ctx context.Context, text string) (string, error) {
	body := map[string]any{
		"model": p.model,
		"messages": []map[string]any{
			{"role": "system", "content": resumeSystemInstruction},
			{"role": "user", "content": text},
		},
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "cv_resume_parser",
				"schema": BuildResumeJSONSchema(),
				"strict": true,
			},
		},
	}

	raw, err := p.post(ctx, p.baseURL+"/chat/completions", body)
	if err != nil {
		return "", err
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return completion.Choices[0].Message.Content, nil
}

func (p *openAIParser) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("completion status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
