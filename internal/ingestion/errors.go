package ingestion

import "fmt"

// FetchError represents a network failure or non-success HTTP status fetching a posting.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch job posting %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ExtractionError is returned when no description can be located on the page.
type ExtractionError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract job posting %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract job posting %s: %s", e.URL, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
