package errs

import "fmt"

// Kind categorizes application errors for logging and HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates a malformed page or configuration value (HTTP 400).
	InvalidInput
	// Unreachable indicates no counting API base could be reached (HTTP 502).
	Unreachable
	// ParsingFailed indicates a response or page could not be parsed (HTTP 500).
	ParsingFailed
	// RecordFailed indicates the record-view call failed. Never user visible.
	RecordFailed
	// CountUnavailable indicates the view count could not be obtained (HTTP 502).
	CountUnavailable
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Unreachable:
		return "unreachable"
	case ParsingFailed:
		return "parsing_failed"
	case RecordFailed:
		return "record_failed"
	case CountUnavailable:
		return "count_unavailable"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the counting API
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
