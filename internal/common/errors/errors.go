// Package errors defines business error codes and error handling.
package errors

import (
	"fmt"
)

// AppError is an application error carrying a business code.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an application error.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an application error wrapping a cause.
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage returns a copy with a different message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError returns a copy carrying the original error.
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Generic errors (1000-1999)
var (
	ErrUnknown         = New(1000, "unknown error")
	ErrInvalidParams   = New(1001, "invalid parameters")
	ErrNotFound        = New(1002, "resource not found")
	ErrAlreadyExists   = New(1003, "resource already exists")
	ErrDatabaseError   = New(1004, "database error")
	ErrCacheError      = New(1005, "cache error")
	ErrInternalError   = New(1006, "internal error")
	ErrExternalService = New(1007, "external service error")
	ErrRateLimitExceed = New(1008, "too many requests")
)

// Auth errors (2000-2999)
var (
	ErrUnauthorized     = New(2000, "not logged in")
	ErrTokenExpired     = New(2001, "session expired")
	ErrTokenInvalid     = New(2002, "invalid session token")
	ErrPermissionDenied = New(2003, "permission denied")
	ErrPasswordError    = New(2004, "incorrect password")
	ErrLoginLocked      = New(2005, "too many failed attempts, try again later")
)

// Booking errors (3000-3999)
var (
	ErrBookingNotFound    = New(3000, "booking not found")
	ErrBookingConflict    = New(3001, "the selected dates are no longer available")
	ErrBookingStatusError = New(3002, "booking is not in a valid state for this action")
	ErrInvalidDateRange   = New(3003, "check-out date must be after check-in date")
	ErrMinimumStay        = New(3004, "stay is shorter than the minimum required")
	ErrTooManyGuests      = New(3005, "guest count exceeds the house capacity")
	ErrBookingInPast      = New(3006, "check-in date is in the past")
)

// Pricing errors (4000-4999)
var (
	ErrPricingNotFound = New(4000, "pricing configuration not found")
	ErrSeasonsNotFound = New(4001, "season table not found")
)

// Payment errors (5000-5999)
var (
	ErrPaymentFailed        = New(5000, "payment failed")
	ErrCheckoutSessionError = New(5001, "could not create checkout session")
	ErrWebhookSignature     = New(5002, "invalid webhook signature")
	ErrPaymentFlowDisabled  = New(5003, "this payment flow is not enabled")
)

// Mail errors (6000-6999)
var (
	ErrMailSendFailed = New(6000, "failed to send email")
)

// IsAppError reports whether err is an application error.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts the application error, wrapping unknown errors.
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
