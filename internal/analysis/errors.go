package analysis

import "fmt"

// AnalysisError wraps a transport or API failure of the remote model call.
//
//nolint:revive // analysis.AnalysisError matches the error taxonomy used by the HTTP layer
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// InvalidResponseError is returned when the model output is not JSON or fails the result schema.
type InvalidResponseError struct {
	Message string
	Cause   error
}

func (e *InvalidResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid analysis response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid analysis response: %s", e.Message)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Cause
}
