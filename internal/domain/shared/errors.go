package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NameNotFound replaces a bare ErrNotFound with one naming the resource; other errors pass through
func NameNotFound(err error, resource string, id any) error {
	if errors.Is(err, ErrNotFound) {
		return NewNotFoundError(resource, id)
	}
	return err
}

// Error codes shared across bounded contexts
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeConflict           = "CONFLICT"
	CodeConcurrentUpdate   = "CONCURRENT_UPDATE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidState       = "INVALID_STATE"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Common domain errors
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists      = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput       = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConflict           = NewDomainError(CodeConflict, "Resource is still referenced")
	ErrConcurrentUpdate   = NewDomainError(CodeConcurrentUpdate, "Resource was modified by another request")
	ErrUnauthorized       = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden          = NewDomainError(CodeForbidden, "Insufficient permissions")
	ErrInvalidState       = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock  = NewDomainError(CodeInsufficientStock, "Insufficient stock for transaction")
	ErrServiceUnavailable = NewDomainError(CodeServiceUnavailable, "Service is not available")
)
