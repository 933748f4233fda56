package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnalysis = `{
	"job_summary": "Backend role building payment APIs.",
	"required_skills": ["Go", "PostgreSQL"],
	"resume_skills": ["Go"],
	"skill_gap": ["PostgreSQL"],
	"match_score": 72,
	"preparation_tips": ["Review indexing strategies"]
}`

func TestValidate_AIAnalysis_Valid(t *testing.T) {
	assert.NoError(t, Validate(AIAnalysis, validAnalysis))
}

func TestValidate_AIAnalysis_ExtraKeysAllowed(t *testing.T) {
	doc := `{"job_summary": "", "required_skills": [], "resume_skills": [], "skill_gap": [],
		"match_score": 0, "preparation_tips": [], "confidence": "high"}`
	assert.NoError(t, Validate(AIAnalysis, doc))
}

func TestValidate_AIAnalysis_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing match_score",
			doc:   `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "preparation_tips": []}`,
			field: "(root)",
		},
		{
			name:  "score above range",
			doc:   `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": 101, "preparation_tips": []}`,
			field: "match_score",
		},
		{
			name:  "negative score",
			doc:   `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": -1, "preparation_tips": []}`,
			field: "match_score",
		},
		{
			name:  "fractional score",
			doc:   `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": 55.5, "preparation_tips": []}`,
			field: "match_score",
		},
		{
			name:  "score as string",
			doc:   `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": "80", "preparation_tips": []}`,
			field: "match_score",
		},
		{
			name:  "non-string skill",
			doc:   `{"job_summary": "x", "required_skills": ["Go", 3], "resume_skills": [], "skill_gap": [], "match_score": 50, "preparation_tips": []}`,
			field: "required_skills.1",
		},
		{
			name:  "tips not a list",
			doc:   `{"job_summary": "x", "required_skills": [], "resume_skills": [], "skill_gap": [], "match_score": 50, "preparation_tips": "study"}`,
			field: "preparation_tips",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(AIAnalysis, tt.doc)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(AIAnalysis, `{"match_score": `)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "schema not found")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "match_score", Message: "Must be less than or equal to 100"},
	}}
	assert.Equal(t, "validation failed: 1. match_score: Must be less than or equal to 100", err.Error())
}
