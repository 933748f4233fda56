package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/mindwise/internal/analysis"
	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/ingestion"
	"github.com/jonathan/mindwise/internal/pipeline"
	"github.com/jonathan/mindwise/internal/resume"
	"github.com/jonathan/mindwise/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@example.com"}, http.StatusBadRequest},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"not found", errJobNotFound, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "page", Message: "bad"}, http.StatusBadRequest},
		{"password too long", fmt.Errorf("failed to hash password: %w", config.ErrPasswordTooLong), http.StatusBadRequest},
		{"no job description", pipeline.ErrNoJobDescription, http.StatusBadRequest},
		{"invalid link", &resume.InvalidLinkError{Link: "x", Message: "no file id"}, http.StatusBadRequest},
		{"resume fetch", &resume.FetchError{Message: "403"}, http.StatusBadRequest},
		{"resume extraction", &resume.ExtractionError{Message: "too short"}, http.StatusBadRequest},
		{"job fetch", &ingestion.FetchError{URL: "u", Cause: errors.New("timeout")}, http.StatusBadRequest},
		{"job extraction", &ingestion.ExtractionError{URL: "u", Message: "nothing"}, http.StatusBadRequest},
		{"invalid model response", &analysis.InvalidResponseError{Message: "not JSON"}, http.StatusBadRequest},
		{"model call failed", &analysis.AnalysisError{Message: "remote", Cause: errors.New("503")}, http.StatusBadGateway},
		{"wrapped typed error", fmt.Errorf("handler: %w", &resume.InvalidLinkError{Link: "x"}), http.StatusBadRequest},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError_NamesField(t *testing.T) {
	req := types.CreateNoteRequest{}
	err := validationError(req.Validate())

	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "Content", ve.Field)
	assert.Equal(t, "required", ve.Message)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Job application not found", errJobNotFound.Error())
	assert.Equal(t, "Note not found", errNoteNotFound.Error())
	assert.Equal(t, "Email already registered", (&ErrEmailAlreadyExists{}).Error())
}
