// Package errors provides the error types used across the countsheet
// system. Structural errors (a missing input file, a missing required
// column) are fatal and reported before any reconciliation work starts;
// everything discovered during reconciliation is non-fatal and surfaces
// as row flags instead of errors.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors for programmatic checks.
var (
	// ErrNotFound indicates a required input artifact is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a value failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingColumn indicates a required column is absent from an
	// input table.
	ErrMissingColumn = errors.New("missing required column")
)

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMissingColumn checks if an error reports a missing required column.
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IOError represents a failure reading or writing an input or output
// artifact.
type IOError struct {
	Operation string // "read", "write", "open", "create"
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// FileNotFoundError reports a required input file that does not exist.
type FileNotFoundError struct {
	Label string // logical name, e.g. "site registry"
	Path  string
}

// Error implements the error interface.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("required file not found: %s (%s)", e.Label, e.Path)
}

// Is implements errors.Is support.
func (e *FileNotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewFileNotFoundError creates a new FileNotFoundError.
func NewFileNotFoundError(label, path string) *FileNotFoundError {
	return &FileNotFoundError{Label: label, Path: path}
}

// ColumnError reports required columns absent from an input table after
// header canonicalization. It names every missing column so the operator
// can fix the workbook in one pass.
type ColumnError struct {
	Table   string
	Missing []string
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("table %s is missing required columns: %v", e.Table, e.Missing)
}

// Is implements errors.Is support.
func (e *ColumnError) Is(target error) bool { return target == ErrMissingColumn }

// NewColumnError creates a new ColumnError.
func NewColumnError(table string, missing []string) *ColumnError {
	return &ColumnError{Table: table, Missing: missing}
}

// ValidationError represents a validation failure, including the final
// sanity assertions that guard against emitting a corrupt report.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents a failure interpreting an input artifact, e.g. a
// workbook that cannot be opened as xlsx or a malformed alias table.
type ParseError struct {
	Format  string // "xlsx", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError represents a configuration problem.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error { return e.Err }

// Helper wrapping functions for common patterns.

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapValidation wraps an error as a ValidationError.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
