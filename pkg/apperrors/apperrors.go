package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an expected, recoverable-by-caller failure.
type Kind string

const (
	KindNotFound       Kind = "NOT_FOUND"
	KindUnavailable    Kind = "UNAVAILABLE"
	KindTimingRejected Kind = "TIMING_REJECTED"
	KindStateConflict  Kind = "STATE_CONFLICT"
	KindUnauthorized   Kind = "UNAUTHORIZED"
)

// Error is the domain error carried across service boundaries. Retryable marks
// failures the caller may retry as-is (lock busy, lost reserve race); all other
// kinds require the caller to change the request or give up.
type Error struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return e.HTTPStatus
}

// NotFound reports a missing screening, booking or movie.
func NotFound(resource string) *Error {
	return &Error{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// SoldOut reports a screening with zero seats left.
func SoldOut() *Error {
	return &Error{
		Kind:       KindUnavailable,
		Message:    "screening is sold out",
		HTTPStatus: http.StatusConflict,
	}
}

// InsufficientSeats reports a partial shortfall (0 < available < requested).
func InsufficientSeats(available int) *Error {
	return &Error{
		Kind:       KindUnavailable,
		Message:    fmt.Sprintf("only %d seats available", available),
		HTTPStatus: http.StatusConflict,
	}
}

// Busy reports a refused lock acquisition. Callers should retry with backoff.
func Busy() *Error {
	return &Error{
		Kind:       KindUnavailable,
		Message:    "system busy, please retry shortly",
		Retryable:  true,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// ReserveLost reports an atomic reserve that failed under the lock: another
// path claimed the seats between the availability check and the decrement.
func ReserveLost() *Error {
	return &Error{
		Kind:       KindUnavailable,
		Message:    "seats no longer available",
		Retryable:  true,
		HTTPStatus: http.StatusConflict,
	}
}

// AlreadyStarted rejects bookings for screenings whose start time has passed.
func AlreadyStarted() *Error {
	return &Error{
		Kind:       KindTimingRejected,
		Message:    "screening has already started",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// CutoffClosed rejects bookings inside the pre-start cutoff window.
func CutoffClosed(cutoff string) *Error {
	return &Error{
		Kind:       KindTimingRejected,
		Message:    fmt.Sprintf("booking closes %s before the screening starts", cutoff),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// StateConflict reports a lifecycle transition whose guard failed, naming the
// booking's current status.
func StateConflict(action, currentStatus string) *Error {
	return &Error{
		Kind:       KindStateConflict,
		Message:    fmt.Sprintf("cannot %s booking in status %s", action, currentStatus),
		HTTPStatus: http.StatusConflict,
	}
}

// Unauthorized reports a cancellation attempted by a non-owning identity.
func Unauthorized(message string) *Error {
	return &Error{
		Kind:       KindUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// Wrap attaches an underlying cause without changing the visible taxonomy.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf extracts the Kind from an error chain, or "" for unexpected errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsRetryable reports whether the caller may retry the same request.
func IsRetryable(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Retryable
}
