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

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("role not found")
)

// Enrollment errors
var (
	ErrStudentNotFound               = errors.New("student not found")
	ErrTeacherNotFound               = errors.New("teacher not found")
	ErrSpecializationNotFound        = errors.New("specialization not found")
	ErrCourseNotFound                = errors.New("course not found")
	ErrContractNotFound              = errors.New("contract not found")
	ErrContractAlreadyExists         = errors.New("contract for this semester already exists")
	ErrPrerequisiteContractMissing   = errors.New("contract for previous semester not found")
	ErrRegistrationNumberExists      = errors.New("registration number already in use")
	ErrDuplicateRank                 = errors.New("duplicate rank in optional preferences")
)

// Collaborator errors
var (
	ErrStorageFailure   = errors.New("file storage operation failed")
	ErrRenderingFailure = errors.New("contract document rendering failed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
