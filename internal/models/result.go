package models

import "encoding/json"

type UploadResponse struct {
	ID           string      `json:"id"`
	Filename     string      `json:"filename"`
	OriginalName string      `json:"original_name"`
	Candidate    *ResumeData `json:"data"`
}

type CandidateResponse struct {
	ID             string          `json:"id"`
	PersonalInfo   json.RawMessage `json:"personal_info"`
	Education      json.RawMessage `json:"education"`
	WorkExperience json.RawMessage `json:"work_experience"`
	Skills         json.RawMessage `json:"skills"`
	Projects       json.RawMessage `json:"projects"`
	Certificates   json.RawMessage `json:"certificates"`
	OriginalName   string          `json:"original_name"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type ChatRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// CandidateFields carries the six structured sections of one committed
// candidate, as stored. Used to assemble the chat context window.
type CandidateFields struct {
	PersonalInfo   json.RawMessage `json:"personal_info"`
	Education      json.RawMessage `json:"education"`
	WorkExperience json.RawMessage `json:"work_experience"`
	Skills         json.RawMessage `json:"skills"`
	Projects       json.RawMessage `json:"projects"`
	Certificates   json.RawMessage `json:"certificates"`
}
