package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`

	// base is the sentinel this error refines; it makes
	// errors.Is(err, ErrPostingFailed) hold for constructed errors.
	base *AppError
	// cause is the underlying error, exposed through Unwrap.
	cause error
}

// Is matches constructed errors against their sentinel
func (e *AppError) Is(target error) bool {
	return e.base != nil && target == error(e.base)
}

// Unwrap returns the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrTokenExpired   = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Settlement errors. Everything before the posting commit point maps to a
// status the caller can act on; post-commit side effect failures are logged
// as warnings by the services and never surface through these.
var (
	ErrInvalidLineItem    = &AppError{Code: http.StatusUnprocessableEntity, Message: "Invalid line item"}
	ErrIncompleteCoverage = &AppError{Code: http.StatusUnprocessableEntity, Message: "Tender allocation does not cover the outstanding amount"}
	ErrPostingFailed      = &AppError{Code: http.StatusInternalServerError, Message: "Settlement could not be posted"}
	ErrDeliveryFailed     = &AppError{Code: http.StatusBadGateway, Message: "Invoice notification could not be delivered"}
	ErrInvalidDestination = &AppError{Code: http.StatusBadRequest, Message: "Invalid notification destination"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInvalidLineItemError creates an invalid line item error with detail
func NewInvalidLineItemError(detail string) *AppError {
	return &AppError{
		Code:    ErrInvalidLineItem.Code,
		Message: "Invalid line item: " + detail,
		base:    ErrInvalidLineItem,
	}
}

// NewDiscountRejectedError creates a business-rule discount rejection.
// These are surfaced to the cashier and never retried automatically.
func NewDiscountRejectedError(reason string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Discount rejected: " + reason,
	}
}

// NewPostingFailedError wraps a storage failure during core record creation.
// The settlement was not applied and is safe to retry from scratch.
func NewPostingFailedError(err error) *AppError {
	return &AppError{
		Code:    ErrPostingFailed.Code,
		Message: ErrPostingFailed.Message + ": " + err.Error(),
		base:    ErrPostingFailed,
		cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsDiscountRejected reports whether err is a discount business-rule rejection
func IsDiscountRejected(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == http.StatusUnprocessableEntity && len(appErr.Message) >= 17 && appErr.Message[:17] == "Discount rejected"
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
