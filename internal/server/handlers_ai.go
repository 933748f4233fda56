package server

import (
	"log"
	"net/http"

	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/ingestion"
	"github.com/jonathan/mindwise/internal/pipeline"
	"github.com/jonathan/mindwise/internal/server/middleware"
	"github.com/jonathan/mindwise/internal/types"
)

// handleAnalyzeJob extracts the resume, optionally scrapes the posting, analyzes the match
// and stores the job application with its result. user_notes is stored only.
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req types.AnalyzeJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	result, err := s.pipeline.Run(r.Context(), pipeline.Input{
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		ResumeLink:     req.ResumeDriveLink,
	})
	if err != nil {
		log.Printf("[ANALYSIS] Analysis failed: %v", err)
		writeError(w, r, err)
		return
	}

	companyName, jobTitle := req.CompanyName, req.JobTitle
	if result.Posting != nil {
		if companyName == "" {
			companyName = result.Posting.Company
		}
		if jobTitle == "" {
			jobTitle = result.Posting.Title
		}
	}
	// A supplied description skips the scrape, so nothing may fill these in.
	if companyName == "" {
		companyName = ingestion.CompanyNotFound
	}
	if jobTitle == "" {
		jobTitle = ingestion.TitleNotFound
	}

	job, err := s.store.CreateJobApplication(r.Context(), db.NewJobApplication{
		UserID:          userID,
		CompanyName:     companyName,
		JobTitle:        jobTitle,
		JobDescription:  result.JobDescription,
		ResumeDriveLink: req.ResumeDriveLink,
		UserNotes:       req.UserNotes,
		AIAnalysis:      result.Analysis,
		Status:          types.StatusAnalyzed,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("[ANALYSIS] Saved job application %s (match score %d)", job.ID, result.Analysis.MatchScore)

	jsonResponse(w, http.StatusOK, types.AnalyzeJobResponse{
		JobID:       job.ID,
		CompanyName: job.CompanyName,
		JobTitle:    job.JobTitle,
		Analysis:    result.Analysis,
	})
}

// handleAnalyzeExistingJob re-runs the analysis for a stored job application
func (s *Server) handleAnalyzeExistingJob(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.pipeline.Run(r.Context(), pipeline.Input{
		JobDescription: job.JobDescription,
		ResumeLink:     job.ResumeDriveLink,
	})
	if err != nil {
		log.Printf("[ANALYSIS] Analysis of job %s failed: %v", jobID, err)
		writeError(w, r, err)
		return
	}

	saved, err := s.store.SaveAnalysis(r.Context(), userID, jobID, result.Analysis, types.StatusAnalyzed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if saved == nil {
		writeError(w, r, errJobNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, saved)
}

// handleExtractJob scrapes a posting URL without storing anything
func (s *Server) handleExtractJob(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	posting, err := s.jobs.Extract(r.Context(), req.URL)
	if err != nil {
		log.Printf("[JOB] Extraction failed for %s: %v", req.URL, err)
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, types.ExtractJobResponse{
		JobDescription: posting.Description,
		JobTitle:       posting.Title,
		CompanyName:    posting.Company,
	})
}
