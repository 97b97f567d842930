// Package errors provides the error taxonomy of the catalog.
// Callers branch on outcomes with errors.Is against the sentinels or
// errors.As against the typed errors.
package errors

import (
	"errors"
	"fmt"
)

// New is an alias for the standard library errors.New.
var New = errors.New

// Is, As and Join re-export the standard library helpers so importers of
// this package do not need both.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors matched by the typed errors below.
var (
	// ErrNotFound indicates that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates an out-of-range or empty required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrParse indicates a row that could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrPersistence indicates a failed file write.
	ErrPersistence = errors.New("persistence failure")

	// ErrSnapshot indicates the history could not record a snapshot.
	ErrSnapshot = errors.New("snapshot failure")
)

// ValidationError represents a field that violates its rule.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// DuplicateNameError represents an artist name collision.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("artist %q already exists", e.Name)
}

// Is implements errors.Is support
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NotFoundError represents a missing entity.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ParseError represents a row that could not be turned into a record.
// Loaders recover from it locally by skipping the row.
type ParseError struct {
	Table string
	Line  int
	Field string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s line %d: field %s: %v", e.Table, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: field %s: %v", e.Table, e.Field, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// PersistenceError represents a failed read or write of a managed file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError wraps err with the operation and path that failed.
func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

// SnapshotError represents a snapshot that could not be created or restored.
type SnapshotError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SnapshotError) Is(target error) bool {
	return target == ErrSnapshot
}
