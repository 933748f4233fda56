package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/mindwise/internal/types"
)

// User represents an account
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	IsFresher    bool      `json:"is_fresher"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToAPI converts the record to its API representation
func (u *User) ToAPI() *types.User {
	return &types.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsFresher: u.IsFresher,
		CreatedAt: u.CreatedAt,
	}
}

// JobApplication is one job a user is tracking, with its optional analysis
type JobApplication struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"user_id"`
	CompanyName     string                  `json:"company_name"`
	JobTitle        string                  `json:"job_title"`
	JobDescription  string                  `json:"job_description"`
	ResumeDriveLink string                  `json:"resume_drive_link"`
	UserNotes       *string                 `json:"user_notes"`
	AIAnalysis      *types.AIAnalysisResult `json:"ai_analysis"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// NewJobApplication holds the fields supplied when a job application is created
type NewJobApplication struct {
	UserID          uuid.UUID
	CompanyName     string
	JobTitle        string
	JobDescription  string
	ResumeDriveLink string
	UserNotes       *string
	AIAnalysis      *types.AIAnalysisResult
	Status          string
}

// JobUpdate is a partial update; nil fields are left untouched
type JobUpdate struct {
	CompanyName    *string
	JobTitle       *string
	JobDescription *string
	UserNotes      *string
	Status         *string
}

// IsEmpty reports whether the update sets nothing
func (u JobUpdate) IsEmpty() bool {
	return u.CompanyName == nil && u.JobTitle == nil && u.JobDescription == nil &&
		u.UserNotes == nil && u.Status == nil
}

// Pagination bounds for job listings
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// JobFilters holds optional filters and pagination for listing job applications
type JobFilters struct {
	Status   string
	Page     int
	PageSize int
}

// Normalize fills defaults and clamps the page bounds
func (f JobFilters) Normalize() JobFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// Offset is the number of rows skipped before the page starts
func (f JobFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// JobPage is one page of job applications plus the total matching count
type JobPage struct {
	Jobs     []JobApplication `json:"jobs"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Note is a timestamped free-text note attached to a job application
type Note struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
