package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/server/middleware"
	"github.com/jonathan/mindwise/internal/types"
)

// handleListJobs lists the caller's job applications, newest first.
// Query parameters: page (>= 1), page_size (1-100), status.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	filters, err := parseJobFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := s.store.ListJobApplications(r.Context(), userID, filters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, page)
}

func parseJobFilters(r *http.Request) (db.JobFilters, error) {
	q := r.URL.Query()
	filters := db.JobFilters{Status: q.Get("status"), Page: 1, PageSize: db.DefaultPageSize}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filters, &ErrValidation{Field: "page", Message: "must be an integer >= 1"}
		}
		filters.Page = page
	}
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > db.MaxPageSize {
			return filters, &ErrValidation{Field: "page_size", Message: "must be an integer between 1 and 100"}
		}
		filters.PageSize = size
	}
	return filters, nil
}

// handleCreateJob stores a job application without analyzing it
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req types.CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	job, err := s.store.CreateJobApplication(r.Context(), db.NewJobApplication{
		UserID:          userID,
		CompanyName:     req.CompanyName,
		JobTitle:        req.JobTitle,
		JobDescription:  req.JobDescription,
		ResumeDriveLink: req.ResumeDriveLink,
		UserNotes:       req.UserNotes,
		Status:          req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, job)
}

// handleGetJob returns one of the caller's job applications
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	jobID, err := pathUUID(r, "job_id", errJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := s.store.GetJobApplication(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if job == nil {
		writeError(w, r, errJobNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob applies a partial update; omitted fields keep their values
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	jobID, err := pathUUID(r, "job_id", errJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.UpdateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	job, err := s.store.UpdateJobApplication(r.Context(), userID, jobID, db.JobUpdate{
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		UserNotes:      req.UserNotes,
		Status:         req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if job == nil {
		writeError(w, r, errJobNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob deletes a job application and its notes
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	jobID, err := pathUUID(r, "job_id", errJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	deleted, err := s.store.DeleteJobApplication(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, r, errJobNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Job application deleted successfully"})
}
