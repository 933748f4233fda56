// Package pipeline orchestrates resume extraction, optional job scraping and match analysis.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/mindwise/internal/ingestion"
	"github.com/jonathan/mindwise/internal/types"
)

// Step names reported through progress events.
const (
	StepResume   = "resume"
	StepJob      = "job"
	StepAnalysis = "analysis"
)

// ErrNoJobDescription is returned when the input has neither a description nor a posting URL.
var ErrNoJobDescription = errors.New("either job_description or job_url is required")

// ResumeExtractor returns the text of a shared resume.
type ResumeExtractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

// JobExtractor scrapes a posting page.
type JobExtractor interface {
	Extract(ctx context.Context, url string) (*ingestion.Posting, error)
}

// Analyzer compares a job description with resume text.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText string) (*types.AIAnalysisResult, error)
}

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Input is everything an analysis run may read. Caller metadata such as user notes
// has no field here, so it cannot reach the analyzer.
type Input struct {
	JobDescription string
	// JobURL is scraped only when JobDescription is empty.
	JobURL     string
	ResumeLink string
}

// Result holds the outputs of a run.
type Result struct {
	Analysis       *types.AIAnalysisResult
	JobDescription string
	// Posting is set when the description was scraped from JobURL.
	Posting    *ingestion.Posting
	ResumeText string
}

// Runner wires the extractors and the analyzer together.
type Runner struct {
	Resumes    ResumeExtractor
	Jobs       JobExtractor
	Analyzer   Analyzer
	// OnProgress may be called from more than one goroutine.
	OnProgress ProgressCallback
}

// Run extracts the resume and, when needed, scrapes the posting concurrently, then analyzes them.
// The first extraction failure cancels the other branch and is returned unchanged.
func (r *Runner) Run(ctx context.Context, in Input) (*Result, error) {
	if in.JobDescription == "" && in.JobURL == "" {
		return nil, ErrNoJobDescription
	}
	if in.JobDescription == "" && r.Jobs == nil {
		return nil, fmt.Errorf("job extraction is not configured")
	}

	result := &Result{JobDescription: in.JobDescription}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, err := r.Resumes.Extract(gCtx, in.ResumeLink)
		if err != nil {
			return err
		}
		result.ResumeText = text
		r.emit(StepResume, fmt.Sprintf("Extracted resume text (%d chars)", len(text)), nil)
		return nil
	})

	if in.JobDescription == "" {
		g.Go(func() error {
			posting, err := r.Jobs.Extract(gCtx, in.JobURL)
			if err != nil {
				return err
			}
			result.Posting = posting
			result.JobDescription = posting.Description
			r.emit(StepJob, fmt.Sprintf("Scraped %q at %s", posting.Title, posting.Company), posting)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("[PIPELINE] Extraction failed: %v", err)
		return nil, err
	}

	analysis, err := r.Analyzer.Analyze(ctx, result.JobDescription, result.ResumeText)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis
	r.emit(StepAnalysis, fmt.Sprintf("Match score %d/100", analysis.MatchScore), analysis)

	return result, nil
}

func (r *Runner) emit(step, message string, content any) {
	if r.OnProgress != nil {
		r.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
