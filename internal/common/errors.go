package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input, e.g. an unknown severity
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a report, directory or file was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfiguration indicates configuration issues, including broken sidecar files
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrFileTooLarge indicates a file above the configured read limit
	ErrFileTooLarge = errors.New("file too large")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap lets errors.Is match ValidationError against ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Section string
	Field   string
	Reason  string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	var msg string
	if e.Section != "" && e.Field != "" {
		msg = fmt.Sprintf("configuration error in section '%s', field '%s': %s", e.Section, e.Field, e.Reason)
	} else if e.Section != "" {
		msg = fmt.Sprintf("configuration error in section '%s': %s", e.Section, e.Reason)
	} else {
		msg = fmt.Sprintf("configuration error: %s", e.Reason)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause, or ErrInvalidConfiguration when there is none
func (e *ConfigurationError) Unwrap() []error {
	if e.Wrapped != nil {
		return []error{ErrInvalidConfiguration, e.Wrapped}
	}
	return []error{ErrInvalidConfiguration}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(section, field, reason string) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Field:   field,
		Reason:  reason,
	}
}

// WrapConfigurationError creates a configuration error carrying its cause
func WrapConfigurationError(err error, section, reason string) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Reason:  reason,
		Wrapped: err,
	}
}

// NotFoundError reports a missing resource below the reports root
type NotFoundError struct {
	Resource string
	Path     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(resource, path string) *NotFoundError {
	return &NotFoundError{Resource: resource, Path: path}
}

// FileTooLargeError reports a file whose size exceeds a read limit
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is %d bytes, limit is %d bytes", e.Path, e.Size, e.Limit)
}

func (e *FileTooLargeError) Unwrap() error {
	return ErrFileTooLarge
}

// NewFileTooLargeError creates a new file-too-large error
func NewFileTooLargeError(path string, size, limit int64) *FileTooLargeError {
	return &FileTooLargeError{Path: path, Size: size, Limit: limit}
}

// IsErrorType checks if an error is of a specific type using errors.Is
func IsErrorType(err error, target error) bool {
	return errors.Is(err, target)
}

// CombineErrors combines multiple errors into a single error with formatted message
func CombineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var messages []string
	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}

	return fmt.Errorf("multiple errors occurred: [%s]", strings.Join(messages, "; "))
}

// ErrorCollector helps collect multiple errors during processing
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// AddWithContext adds an error with additional context
func (ec *ErrorCollector) AddWithContext(err error, context string) {
	if err != nil {
		ec.errors = append(ec.errors, WrapError(err, context))
	}
}

// HasErrors returns true if any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// Error returns a combined error from all collected errors
func (ec *ErrorCollector) Error() error {
	return CombineErrors(ec.errors)
}

// Errors returns all collected errors
func (ec *ErrorCollector) Errors() []error {
	return ec.errors
}
