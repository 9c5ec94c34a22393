package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("resource belongs to another user")

	ErrInvalidInput = errors.New("invalid input data")
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// Codes carried by AppError. The store codes map onto a generic user-visible failure.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeStoreWrite  = "STORE_WRITE_ERROR"
	CodeStoreDelete = "STORE_DELETE_ERROR"
	CodeStoreQuery  = "STORE_QUERY_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeWeakPass    = "WEAK_PASSWORD"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
