//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AnalyzeJobRequest is the body of the job-analysis submission.
// UserNotes is stored with the job application and never forwarded to the analysis client.
type AnalyzeJobRequest struct {
	CompanyName     string  `json:"company_name" validate:"required_without=JobURL,max=255"`
	JobTitle        string  `json:"job_title" validate:"required_without=JobURL,max=255"`
	JobDescription  string  `json:"job_description" validate:"required_without=JobURL"`
	JobURL          string  `json:"job_url,omitempty" validate:"omitempty,url"`
	ResumeDriveLink string  `json:"resume_drive_link" validate:"required"`
	UserNotes       *string `json:"user_notes,omitempty"`
}

// AnalyzeJobResponse is returned after a successful analysis.
type AnalyzeJobResponse struct {
	JobID       uuid.UUID         `json:"job_id"`
	CompanyName string            `json:"company_name"`
	JobTitle    string            `json:"job_title"`
	Analysis    *AIAnalysisResult `json:"analysis"`
}

// CreateJobRequest creates a job application without running the analysis.
type CreateJobRequest struct {
	CompanyName     string  `json:"company_name" validate:"required,max=255"`
	JobTitle        string  `json:"job_title" validate:"required,max=255"`
	JobDescription  string  `json:"job_description" validate:"required"`
	ResumeDriveLink string  `json:"resume_drive_link" validate:"required"`
	UserNotes       *string `json:"user_notes,omitempty"`
	Status          string  `json:"status,omitempty" validate:"omitempty,max=50"`
}

// UpdateJobRequest is a partial update; nil fields are left untouched.
type UpdateJobRequest struct {
	CompanyName    *string `json:"company_name,omitempty" validate:"omitnil,min=1,max=255"`
	JobTitle       *string `json:"job_title,omitempty" validate:"omitnil,min=1,max=255"`
	JobDescription *string `json:"job_description,omitempty" validate:"omitnil,min=1"`
	UserNotes      *string `json:"user_notes,omitempty"`
	Status         *string `json:"status,omitempty" validate:"omitnil,min=1,max=50"`
}

// IsEmpty reports whether the update carries no fields.
func (r *UpdateJobRequest) IsEmpty() bool {
	return r.CompanyName == nil && r.JobTitle == nil && r.JobDescription == nil &&
		r.UserNotes == nil && r.Status == nil
}

// ExtractJobRequest asks the job extractor to scrape a posting URL.
type ExtractJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ExtractJobResponse carries the scraped posting fields.
type ExtractJobResponse struct {
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
}

// CreateNoteRequest is the body for creating a note.
type CreateNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// Validate validates the AnalyzeJobRequest using the validator.
func (r *AnalyzeJobRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ExtractJobRequest using the validator.
func (r *ExtractJobRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the CreateNoteRequest using the validator.
func (r *CreateNoteRequest) Validate() error {
	return validator.New().Struct(r)
}
