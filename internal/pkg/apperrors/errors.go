package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds the HTTP layer knows how to translate
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Entity errors
var (
	ErrStudentNotFound         = fmt.Errorf("student %w", ErrResourceNotFound)
	ErrFacultyNotFound         = fmt.Errorf("faculty %w", ErrResourceNotFound)
	ErrInvalidFacultyReference = fmt.Errorf("%w: student references a faculty that does not exist", ErrValidationFailed)
)

// CustomError attaches a client-facing message to one of the error kinds.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError reports a missing resource with a custom message
func NewResourceNotFoundError(message string) error {
	return withMessage(ErrResourceNotFound, message)
}

// NewBadRequestError reports unusable input with a custom message
func NewBadRequestError(message string) error {
	return withMessage(ErrBadRequest, message)
}

func withMessage(kind error, message string) error {
	return &CustomError{Err: kind, Message: message}
}
