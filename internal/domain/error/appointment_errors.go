// Package error defines domain-specific errors for the consultation dashboard.
package error

import "errors"

// Appointment domain errors.
var (
	// ErrAppointmentNotFound is returned when an appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidAppointmentStatus is returned for unknown appointment statuses.
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status")

	// ErrAppointmentClientRequired is returned when an appointment has no client name.
	ErrAppointmentClientRequired = errors.New("appointment client name is required")
)

// AppointmentErrorCode defines error codes for appointment errors.
// Format: APT-XXYYYY where XX is category and YYYY is specific error.
type AppointmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAppointmentStatus    AppointmentErrorCode = "APT-010001"
	ErrCodeInvalidAppointmentService   AppointmentErrorCode = "APT-010002"
	ErrCodeAppointmentNegativeAmount   AppointmentErrorCode = "APT-010003"
	ErrCodeInvalidAppointmentDateRange AppointmentErrorCode = "APT-010004"
	ErrCodeAppointmentClientRequired   AppointmentErrorCode = "APT-010005"

	// State errors (02XXXX)
	ErrCodeAppointmentNotFound AppointmentErrorCode = "APT-020001"
)

// AppointmentError represents an appointment error with code and message.
type AppointmentError struct {
	Code    AppointmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppointmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppointmentError) Unwrap() error {
	return e.Err
}

// NewAppointmentError creates a new AppointmentError with the given code and message.
func NewAppointmentError(code AppointmentErrorCode, message string, err error) *AppointmentError {
	return &AppointmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
