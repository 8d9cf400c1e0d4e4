package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds distinguish fatal acquisition failures from everything else.
// Only acquisition-class errors collapse a scrape into the sentinel failure
// snapshot; parse-level problems degrade field by field instead.
const (
	KindAcquisition = "acquisition_failed"
	KindNavigation  = "navigation_timeout"
	KindValidation  = "validation_failed"
	KindCaptcha     = "captcha_unsolved"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// IsAcquisitionError reports whether err is a transport or navigation level
// failure of the page acquisition layer.
func IsAcquisitionError(err error) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind == KindAcquisition || ce.Kind == KindNavigation
	}
	return false
}

// NewAcquisitionError reports a transport-level failure (DNS, blocked, browser
// session could not be established).
func NewAcquisitionError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Kind:    KindAcquisition,
		Message: "Page acquisition failed",
		Detail:  detail,
	}
}

// NewNavigationError reports that the page never reached the content-ready
// signal within the navigation timeout.
func NewNavigationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusRequestTimeout,
		Kind:    KindNavigation,
		Message: "Navigation timed out",
		Detail:  detail,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: "Validation failed",
		Detail:  detail,
	}
}

func NewCaptchaError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindCaptcha,
		Message: "Captcha challenge could not be solved",
		Detail:  detail,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    "internal_error",
		Message: message,
	}
}
