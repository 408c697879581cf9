package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain error.
type ErrorCode string

const (
	ErrCodeStorageInit  ErrorCode = "STORAGE_INIT_FAILED"
	ErrCodeNotFound     ErrorCode = "TODO_NOT_FOUND"
	ErrCodePersistence  ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeValidation   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// DomainError is the error type every operation surfaces to its callers.
// Underlying storage failures never propagate past the service layer
// unwrapped.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// CodeOf extracts the error code, defaulting to INTERNAL_ERROR for errors
// that did not originate in this package.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}

// NewStorageInitError reports a failure to open the store or create its
// schema. This is fatal: the application cannot proceed without a store.
func NewStorageInitError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeStorageInit,
		Message: fmt.Sprintf("failed to initialize storage: %v", err),
	}
}

// NewNotFoundError reports an operation that targeted a non-existent id.
func NewNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("todo %d not found", id),
	}
}

// NewPersistenceError reports a read/write failure; the user may retry the
// action.
func NewPersistenceError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("storage operation failed: %v", err),
	}
}

// NewValidationError reports input rejected before it reached the store.
func NewValidationError(msg string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}
