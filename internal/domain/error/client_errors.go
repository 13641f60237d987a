// Package error defines domain-specific errors for the consultation dashboard.
package error

import "errors"

// Client domain errors.
var (
	// ErrClientNotFound is returned when a client does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientNameRequired is returned when a client has no name.
	ErrClientNameRequired = errors.New("client name is required")

	// ErrClientNameTaken is returned when another client already uses the normalised name.
	ErrClientNameTaken = errors.New("client name already in use")

	// ErrInvalidClientEmail is returned when a client e-mail is malformed.
	ErrInvalidClientEmail = errors.New("invalid client email")
)

// ClientErrorCode defines error codes for client errors.
// Format: CLI-XXYYYY where XX is category and YYYY is specific error.
type ClientErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeClientNameRequired ClientErrorCode = "CLI-010001"
	ErrCodeInvalidClientEmail ClientErrorCode = "CLI-010002"

	// State errors (02XXXX)
	ErrCodeClientNotFound  ClientErrorCode = "CLI-020001"
	ErrCodeClientNameTaken ClientErrorCode = "CLI-020002"
)

// ClientError represents a client error with code and message.
type ClientError struct {
	Code    ClientErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError with the given code and message.
func NewClientError(code ClientErrorCode, message string, err error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
