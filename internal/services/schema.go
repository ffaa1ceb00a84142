package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResumeJSONSchema returns the JSON Schema the completion service is
// constrained by. All six top-level sections are required and every object
// level forbids additional properties, so a conforming response decodes
// directly into models.ResumeData.
func BuildResumeJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"personal_info": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":    stringProp("Full name of the individual"),
					"email":   stringProp("Email address of the individual"),
					"phone":   stringProp("Phone number of the individual"),
					"address": stringProp("Postal address of the individual"),
				},
				"required":             []string{"name", "email", "phone", "address"},
				"additionalProperties": false,
			},
			"education": arrayOfObjects("List of educational qualifications", map[string]any{
				"degree":      stringProp("Degree obtained"),
				"institution": stringProp("Name of the educational institution"),
				"year":        stringProp("Year of graduation"),
			}, []string{"degree", "institution", "year"}),
			"work_experience": arrayOfObjects("List of work experiences", map[string]any{
				"job_title":        stringProp("Title of the job held"),
				"company":          stringProp("Company where the job was held"),
				"start_date":       stringProp("Start date of employment"),
				"end_date":         stringProp("End date of employment"),
				"responsibilities": stringProp("Key responsibilities held during the job"),
			}, []string{"job_title", "company", "start_date", "end_date", "responsibilities"}),
			"skills": map[string]any{
				"type":        "array",
				"description": "List of skills possessed by the individual",
				"items":       map[string]any{"type": "string"},
			},
			"projects": arrayOfObjects("List of projects undertaken by the individual", map[string]any{
				"project_name": stringProp("Name of the project"),
				"description":  stringProp("Brief description of the project"),
				"technologies": stringProp("Technologies used in the project"),
			}, []string{"project_name", "description", "technologies"}),
			"certificates": arrayOfObjects("List of certifications acquired by the individual", map[string]any{
				"certificate_name": stringProp("Name of the certification"),
				"issued_by":        stringProp("Name of the organization that issued the certification"),
				"year":             stringProp("Year the certification was obtained"),
			}, []string{"certificate_name", "issued_by", "year"}),
		},
		"required": []string{
			"personal_info",
			"education",
			"work_experience",
			"skills",
			"projects",
			"certificates",
		},
		"additionalProperties": false,
	}
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func arrayOfObjects(description string, props map[string]any, required []string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items": map[string]any{
			"type":                 "object",
			"properties":           props,
			"required":             required,
			"additionalProperties": false,
		},
	}
}

// CompileResumeSchema compiles the same schema for local validation of
// parsing responses. A response missing a required section fails here and
// is never defaulted.
func CompileResumeSchema() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(BuildResumeJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("resume.schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("failed to add resume schema resource: %w", err)
	}

	schema, err := compiler.Compile("resume.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile resume schema: %w", err)
	}
	return schema, nil
}
