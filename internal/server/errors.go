// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/mindwise/internal/analysis"
	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/ingestion"
	"github.com/jonathan/mindwise/internal/pipeline"
	"github.com/jonathan/mindwise/internal/resume"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "Email already registered"
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Incorrect email or password"
}

// ErrNotFound indicates a resource is missing or owned by someone else
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

var (
	errJobNotFound  = &ErrNotFound{Resource: "Job application"}
	errNoteNotFound = &ErrNotFound{Resource: "Note"}
	errUserNotFound = &ErrNotFound{Resource: "User"}
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists   *ErrEmailAlreadyExists
		invalidCreds  *ErrInvalidCredentials
		notFound      *ErrNotFound
		validation    *ErrValidation
		fieldErrs     validator.ValidationErrors
		invalidLink   *resume.InvalidLinkError
		resumeFetch   *resume.FetchError
		resumeExtract *resume.ExtractionError
		jobFetch      *ingestion.FetchError
		jobExtract    *ingestion.ExtractionError
		invalidResp   *analysis.InvalidResponseError
		analysisErr   *analysis.AnalysisError
	)

	switch {
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &emailExists),
		errors.As(err, &validation),
		errors.As(err, &fieldErrs),
		errors.Is(err, config.ErrPasswordTooLong),
		errors.Is(err, pipeline.ErrNoJobDescription),
		errors.As(err, &invalidLink),
		errors.As(err, &resumeFetch),
		errors.As(err, &resumeExtract),
		errors.As(err, &jobFetch),
		errors.As(err, &jobExtract),
		errors.As(err, &invalidResp):
		return http.StatusBadRequest
	case errors.As(err, &analysisErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an ErrValidation naming the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Message: err.Error()}
}
