// Package error defines domain-specific errors for the consultation dashboard.
package error

import "errors"

// Analysis domain errors.
var (
	// ErrAnalysisNotFound is returned when an analysis does not exist.
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrInvalidServiceType is returned for unknown service types.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrAnalysisClientRequired is returned when an analysis has no client name.
	ErrAnalysisClientRequired = errors.New("analysis client name is required")
)

// AnalysisErrorCode defines error codes for analysis errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalysisErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAnalysisClientRequired AnalysisErrorCode = "ANL-010001"
	ErrCodeInvalidServiceType     AnalysisErrorCode = "ANL-010002"
	ErrCodeInvalidAnalysisDate    AnalysisErrorCode = "ANL-010003"
	ErrCodeInvalidAnalysisPlan    AnalysisErrorCode = "ANL-010004"

	// State errors (02XXXX)
	ErrCodeAnalysisNotFound AnalysisErrorCode = "ANL-020001"
)

// AnalysisError represents an analysis error with code and message.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError with the given code and message.
func NewAnalysisError(code AnalysisErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
