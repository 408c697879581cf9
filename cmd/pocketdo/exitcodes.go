package main

import "github.com/pocketdo/pocketdo/internal/domain"

// Exit codes for the CLI
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitStorageError    = 2
	ExitNotFound        = 3
	ExitValidationError = 4
)

// exitCodeFor maps a domain error to a process exit code.
func exitCodeFor(err error) int {
	switch domain.CodeOf(err) {
	case domain.ErrCodeStorageInit, domain.ErrCodePersistence:
		return ExitStorageError
	case domain.ErrCodeNotFound:
		return ExitNotFound
	case domain.ErrCodeValidation:
		return ExitValidationError
	default:
		return ExitGeneralError
	}
}
