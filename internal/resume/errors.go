package resume

import "fmt"

// InvalidLinkError is returned when no file identifier can be recovered from a sharing link.
// No network call is made in that case.
type InvalidLinkError struct {
	Link    string
	Message string
}

func (e *InvalidLinkError) Error() string {
	return fmt.Sprintf("invalid resume link %q: %s", e.Link, e.Message)
}

// FetchError represents a network or HTTP-status failure while downloading the document.
type FetchError struct {
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume fetch error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume fetch error: %s", e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ExtractionError is returned when the downloaded document yields no usable text.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
