package shared

import (
	"errors"
	"fmt"
)

// Error kinds. Every DomainError unwraps to exactly one of these.
var (
	ErrValidation = errors.New("validation failed")
	ErrCapacity   = errors.New("capacity exceeded")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// DomainError is the error type raised by the domain layer
type DomainError struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is/As
func (e *DomainError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func NewValidationError(code, message string, err error) *DomainError {
	return &DomainError{Kind: ErrValidation, Code: code, Message: message, Err: err}
}

func NewCapacityError(code, message string) *DomainError {
	return &DomainError{Kind: ErrCapacity, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Kind: ErrNotFound, Code: code, Message: message}
}

func NewConflictError(code, message string) *DomainError {
	return &DomainError{Kind: ErrConflict, Code: code, Message: message}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsCapacity(err error) bool   { return errors.Is(err, ErrCapacity) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }

// Code returns the code of the first DomainError in the chain, or "" if there is none
func Code(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
