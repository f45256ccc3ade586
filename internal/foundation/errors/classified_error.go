package errors

import (
	stderrors "errors"
	"fmt"
)

// ClassifiedError represents a structured error with category, severity, and context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// Error implements the standard error interface.
func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.category, e.severity, e.message, e.cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
}

// Unwrap implements Go 1.13+ error unwrapping.
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

// Category returns the error category.
func (e *ClassifiedError) Category() ErrorCategory {
	return e.category
}

// Severity returns the error severity.
func (e *ClassifiedError) Severity() ErrorSeverity {
	return e.severity
}

// Message returns the error message.
func (e *ClassifiedError) Message() string {
	return e.message
}

// Cause returns the underlying error.
func (e *ClassifiedError) Cause() error {
	return e.cause
}

// Context returns the error context.
func (e *ClassifiedError) Context() ErrorContext {
	return e.context
}

// WithContext adds context to the error and returns a new error.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	newContext := e.context.Merge(ErrorContext{key: value})
	return &ClassifiedError{
		category: e.category,
		severity: e.severity,
		message:  e.message,
		cause:    e.cause,
		context:  newContext,
	}
}

// Is implements error comparison for Go 1.13+ error handling.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

// IsCategory checks if the error belongs to a specific category.
func (e *ClassifiedError) IsCategory(category ErrorCategory) bool {
	return e.category == category
}

// IsFatal checks if the error is fatal (should stop execution).
func (e *ClassifiedError) IsFatal() bool {
	return e.severity == SeverityFatal
}

// IsArgumentError reports whether the error stems from user input: malformed
// flags, missing values or declared paths that do not exist.
func (e *ClassifiedError) IsArgumentError() bool {
	return e.category == CategoryValidation || e.category == CategoryNotFound
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// IsClassified checks if an error chain contains a ClassifiedError.
func IsClassified(err error) bool {
	_, ok := AsClassified(err)
	return ok
}

// HasCategory checks if the error chain carries a ClassifiedError of the category.
func HasCategory(err error, category ErrorCategory) bool {
	if classified, ok := AsClassified(err); ok {
		return classified.IsCategory(category)
	}
	return false
}

// IsArgumentError checks if the error chain carries an argument error.
func IsArgumentError(err error) bool {
	if classified, ok := AsClassified(err); ok {
		return classified.IsArgumentError()
	}
	return false
}

// IsInterrupted checks if the error marks a user-requested cancellation.
func IsInterrupted(err error) bool {
	if classified, ok := AsClassified(err); ok {
		v, _ := classified.Context().Get(ContextInterrupted)
		interrupted, _ := v.(bool)
		return interrupted
	}
	return false
}

// IsSilent reports errors that only carry an exit code and print nothing.
func IsSilent(err error) bool {
	if IsInterrupted(err) {
		return true
	}
	if classified, ok := AsClassified(err); ok {
		v, _ := classified.Context().Get(ContextSilent)
		silent, _ := v.(bool)
		return silent
	}
	return false
}

// ExitCode extracts the exit code carried by a subprocess failure.
func ExitCode(err error) (int, bool) {
	if classified, ok := AsClassified(err); ok {
		return classified.Context().GetInt(ContextExitCode)
	}
	return 0, false
}

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.Category()
	}
	return CategoryInternal
}
