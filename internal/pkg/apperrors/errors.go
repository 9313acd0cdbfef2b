package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Course and slide errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrSlideNotFound  = errors.New("slide not found")
	ErrImportFailed   = errors.New("import failed")
)

// ImportFailedMessage is the user facing message of a failed course import
const ImportFailedMessage = "Import failed"

// NonFieldErrorsKey groups validation errors that are not tied to a single field
const NonFieldErrorsKey = "non_field_errors"

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying field level messages
func NewValidationError(fieldErrors map[string][]string) error {
	details := make(map[string]interface{}, len(fieldErrors))
	for field, msgs := range fieldErrors {
		details[field] = msgs
	}
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: "Validation failed",
		Details: details,
	}
}

// NewImportFailedError wraps the cause of a failed import. The cause stays reachable through
// Cause for logging while the message shown to clients is fixed.
func NewImportFailedError(cause error) error {
	return &CustomError{
		Err:     ErrImportFailed,
		Message: ImportFailedMessage,
		Details: map[string]interface{}{
			NonFieldErrorsKey: []string{ImportFailedMessage},
		},
		cause: cause,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
	cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying failure that produced this error, if any
func (e *CustomError) Cause() error {
	return e.cause
}

// DetailsOf returns the details attached to err, or nil
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

// MessageOf returns the custom message attached to err, or fallback
func MessageOf(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
