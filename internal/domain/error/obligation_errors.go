// Package error defines domain-specific errors for the consultation dashboard.
package error

import "errors"

// Obligation domain errors.
var (
	// ErrObligationNotFound is returned when an obligation does not exist.
	ErrObligationNotFound = errors.New("obligation not found")

	// ErrResyncInProgress is returned when another resync holds the plan lock.
	ErrResyncInProgress = errors.New("plan resync already in progress")

	// ErrObligationSuperseded is returned when paying or reopening an
	// obligation that a resync replaced.
	ErrObligationSuperseded = errors.New("obligation was superseded by a newer schedule")

	// ErrInvalidObligationKind is returned for kinds other than monthly or weekly.
	ErrInvalidObligationKind = errors.New("invalid obligation kind")

	// ErrObligationStorage is returned when reading or writing obligations fails.
	ErrObligationStorage = errors.New("obligation storage failure")
)

// ObligationErrorCode defines error codes for obligation errors.
// Format: OBL-XXYYYY where XX is category and YYYY is specific error.
type ObligationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeObligationNotFound      ObligationErrorCode = "OBL-010001"
	ErrCodeInvalidObligationKind   ObligationErrorCode = "OBL-010002"
	ErrCodeInvalidObligationFilter ObligationErrorCode = "OBL-010003"

	// Concurrency errors (02XXXX)
	ErrCodeResyncInProgress     ObligationErrorCode = "OBL-020001"
	ErrCodeObligationSuperseded ObligationErrorCode = "OBL-020002"

	// Storage errors (03XXXX)
	ErrCodeObligationStorage ObligationErrorCode = "OBL-030001"
)

// ObligationError represents an obligation error with code and message.
type ObligationError struct {
	Code    ObligationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ObligationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ObligationError) Unwrap() error {
	return e.Err
}

// NewObligationError creates a new ObligationError with the given code and message.
func NewObligationError(code ObligationErrorCode, message string, err error) *ObligationError {
	return &ObligationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
