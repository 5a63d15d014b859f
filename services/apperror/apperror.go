// Package apperror defines the failures the booking core surfaces to callers.
// Each carries the HTTP status the handlers answer with.
package apperror

import (
	"errors"
	"net/http"
)

// Error is a caller-facing failure.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new caller-facing error.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

var (
	ErrNotFound         = New(http.StatusNotFound, "NotFound", "resource not found")
	ErrSlotUnavailable  = New(http.StatusConflict, "SlotUnavailable", "slot not available")
	ErrInvalidSignature = New(http.StatusBadRequest, "InvalidSignature", "invalid payment signature")
	ErrInvalidBooking   = New(http.StatusBadRequest, "InvalidBooking", "invalid or incomplete booking")
	ErrDuplicateReview  = New(http.StatusConflict, "DuplicateReview", "review already submitted for this booking")
	ErrValidation       = New(http.StatusBadRequest, "ValidationError", "invalid input")
	ErrAlreadyCompleted = New(http.StatusConflict, "AlreadyCompleted", "booking already completed")
	ErrBookingFailed    = New(http.StatusConflict, "BookingFailed", "booking payment has failed")
	ErrForbidden        = New(http.StatusForbidden, "Forbidden", "not authorized for this resource")
	ErrPaymentPending   = New(http.StatusConflict, "PaymentPending", "payment has not settled yet")
)

// StatusOf maps err to an HTTP status; unknown errors are 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the taxonomy code of err, or "Internal".
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "Internal"
}
