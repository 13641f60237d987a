package error

import "errors"

// Email domain errors.
var (
	// ErrRecipientMissing is returned when a client has no e-mail address.
	ErrRecipientMissing = errors.New("client has no email address")

	// ErrEmailJobNotFound is returned when an email job is not found.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrInvalidTemplate is returned when a job names an unknown template.
	ErrInvalidTemplate = errors.New("invalid email template")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeRecipientMissing EmailErrorCode = "EMAIL-010002"

	// Delivery errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020002"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// Permanent reports whether retrying cannot succeed.
func (e *EmailError) Permanent() bool {
	switch e.Code {
	case ErrCodePermanentEmailFailure, ErrCodeInvalidTemplate, ErrCodeTemplateRenderFailed:
		return true
	default:
		return false
	}
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether err carries a permanent EmailError.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Permanent()
}
