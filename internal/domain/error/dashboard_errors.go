// Package error defines domain-specific errors for the consultation dashboard.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must be after start_date")

	// ErrInvalidPeriod is returned when period is not one of week, month, year or all.
	ErrInvalidPeriod = errors.New("period must be: week, month, year, or all")

	// ErrInvalidHorizon is returned when within_days is negative.
	ErrInvalidHorizon = errors.New("within_days cannot be negative")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidGranularity is returned when granularity is not weekly, monthly or quarterly.
	ErrInvalidGranularity = errors.New("granularity must be: weekly, monthly, or quarterly")

	// ErrDateRangeTooLarge is returned when a trend range exceeds the maximum span.
	ErrDateRangeTooLarge = errors.New("date range is too large")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange   DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidPeriod      DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidHorizon     DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidDateFormat  DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidGranularity DashboardErrorCode = "DSH-010005"
	ErrCodeDateRangeTooLarge  DashboardErrorCode = "DSH-010006"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
