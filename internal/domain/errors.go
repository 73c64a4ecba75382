package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError collects the individual problems found while validating a
// registration request. Each description is surfaced to the caller.
type ValidationError struct {
	Descriptions []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Descriptions, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
