// Package ingestion scrapes job postings into description, title and company text.
package ingestion

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/mindwise/internal/fetch"
)

// DefaultTimeout bounds the page request.
const DefaultTimeout = 10 * time.Second

// Posting is the best-effort content scraped from a job posting page.
type Posting struct {
	URL         string         `json:"url"`
	Platform    fetch.Platform `json:"platform"`
	Title       string         `json:"job_title"`
	Company     string         `json:"company_name"`
	Description string         `json:"job_description"`
}

// Extractor fetches posting pages and locates their content with ordered selector heuristics.
// The result is plausible content or an error, never a guarantee of correctness.
type Extractor struct {
	Timeout time.Duration
	// Renderer, when set, re-renders pages whose static HTML yields little or no description.
	Renderer fetch.Renderer
	Verbose  bool
}

// NewExtractor creates an extractor with the given request timeout and no browser fallback.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{Timeout: timeout}
}

// Extract fetches url and returns its posting content.
func (e *Extractor) Extract(ctx context.Context, url string) (*Posting, error) {
	platform := fetch.DetectPlatform(url)
	if e.Verbose {
		log.Printf("[JOB] URL: %s (platform: %s)", url, platform)
	}

	result, err := fetch.URL(ctx, url, &fetch.Options{
		Timeout:   e.Timeout,
		UserAgent: fetch.BrowserUserAgent,
	})
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	if e.Verbose {
		log.Printf("[JOB] Fetched HTML: %d bytes", len(result.Body))
	}

	posting, extractErr := ExtractFromHTML(result.HTML(), url)
	if e.Renderer == nil {
		return posting, extractErr
	}
	if extractErr == nil && !fetch.ShouldUseBrowser(posting.Description) {
		return posting, nil
	}

	if e.Verbose {
		log.Printf("[JOB] Static HTML insufficient, rendering with browser")
	}
	html, renderErr := e.Renderer.Render(ctx, url)
	if renderErr != nil {
		log.Printf("[JOB] Browser rendering failed for %s: %v", url, renderErr)
		return posting, extractErr
	}

	rendered, err := ExtractFromHTML(html, url)
	if err != nil {
		return posting, extractErr
	}
	if extractErr == nil && len(rendered.Description) <= len(posting.Description) {
		return posting, nil
	}
	return rendered, nil
}

// ExtractFromHTML locates title, company and description in an already-fetched page.
func ExtractFromHTML(html, url string) (*Posting, error) {
	platform := fetch.DetectPlatform(url)
	selectors := fetch.PlatformSelectors(platform)

	doc, err := fetch.ParseHTML(html, selectors.Noise...)
	if err != nil {
		return nil, &ExtractionError{URL: url, Message: "unparseable HTML", Cause: err}
	}

	posting := &Posting{
		URL:      url,
		Platform: platform,
		Title:    TitleNotFound,
		Company:  CompanyNotFound,
	}
	if title, ok := firstMatch(doc, inlineStrategies(selectors.Title, titleSelectors)); ok {
		posting.Title = title
	}
	if company, ok := firstMatch(doc, inlineStrategies(selectors.Company, companySelectors)); ok {
		posting.Company = company
	}

	description, ok := firstMatch(doc, descriptionStrategies(selectors.Description))
	if !ok {
		return nil, &ExtractionError{URL: url, Message: "could not extract job description from the page"}
	}
	posting.Description = description

	return posting, nil
}
