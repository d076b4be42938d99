package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets wrapped errors match their sentinel by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches an underlying cause to a sentinel error.
func Wrap(err error, base *Error) *Error {
	if base == nil {
		base = ErrInternal
	}
	return &Error{Code: base.Code, Status: base.Status, Message: base.Message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCatalogUnavailable   = New("CATALOG_UNAVAILABLE", http.StatusServiceUnavailable, "course catalog unavailable")
	ErrCatalogEmpty         = New("CATALOG_EMPTY", http.StatusServiceUnavailable, "course catalog has no usable entries")
	ErrTranscriptUnreadable = New("TRANSCRIPT_UNREADABLE", http.StatusBadRequest, "transcript could not be read")
	ErrTranscriptIncomplete = New("TRANSCRIPT_INCOMPLETE", http.StatusBadRequest, "transcript is missing required fields")
	ErrReportNotReady       = New("REPORT_NOT_READY", http.StatusConflict, "report is not ready yet")
	ErrReportFailed         = New("REPORT_FAILED", http.StatusInternalServerError, "report generation failed")
	ErrInvalidSignature     = New("INVALID_SIGNATURE", http.StatusForbidden, "download link is invalid or expired")
	ErrQueueFull            = New("QUEUE_FULL", http.StatusServiceUnavailable, "job queue is full")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
