// Package error defines domain-specific errors for the consultation dashboard.
package error

import "errors"

// Payment plan domain errors.
var (
	// ErrPlanNotFound is returned when an analysis carries no payment plan.
	ErrPlanNotFound = errors.New("payment plan not found")

	// ErrNegativeAmount is returned when a plan amount is below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrPlanStartDateRequired is returned when a plan has no start date.
	ErrPlanStartDateRequired = errors.New("plan start date is required")

	// ErrPlanClientRequired is returned when a plan has no client name.
	ErrPlanClientRequired = errors.New("plan client name is required")

	// ErrTooManyPeriods is returned when a plan asks for more periods than allowed.
	ErrTooManyPeriods = errors.New("too many periods")
)

// PlanErrorCode defines error codes for payment plan errors.
// Format: PLN-XXYYYY where XX is category and YYYY is specific error.
type PlanErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPlanKind    PlanErrorCode = "PLN-010001"
	ErrCodeTooManyPeriods     PlanErrorCode = "PLN-010002"
	ErrCodeNegativeAmount     PlanErrorCode = "PLN-010003"
	ErrCodePlanStartRequired  PlanErrorCode = "PLN-010004"
	ErrCodePlanClientRequired PlanErrorCode = "PLN-010005"
	ErrCodeInvalidPlanDate    PlanErrorCode = "PLN-010006"
	ErrCodeInvalidPlanRequest PlanErrorCode = "PLN-010007"

	// Lookup errors (02XXXX)
	ErrCodePlanNotFound PlanErrorCode = "PLN-020001"
)

// PlanError represents a payment plan error with code and message.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError creates a new PlanError with the given code and message.
func NewPlanError(code PlanErrorCode, message string, err error) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
