package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityError,
		message:  message,
		cause:    err,
		context:  make(ErrorContext),
	}
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Fatal sets the severity to fatal.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	return b.WithSeverity(SeverityFatal)
}

// Warning sets the severity to warning.
func (b *ErrorBuilder) Warning() *ErrorBuilder {
	return b.WithSeverity(SeverityWarning)
}

// Info sets the severity to info.
func (b *ErrorBuilder) Info() *ErrorBuilder {
	return b.WithSeverity(SeverityInfo)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors for common error patterns

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError creates a validation (argument) error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// InvalidArgument reports a malformed command-line token.
func InvalidArgument(token string) *ErrorBuilder {
	return ValidationError("invalid argument " + token).
		WithContext(ContextToken, token)
}

// MissingArgument reports a flag that requires a value but reached the end of input.
func MissingArgument(flag string) *ErrorBuilder {
	return ValidationError("missing argument for " + flag).
		WithContext(ContextFlag, flag)
}

// NotFound reports a declared path that does not exist.
func NotFound(flag, path string) *ErrorBuilder {
	return NewError(CategoryNotFound, "can't find "+path).Fatal().
		WithContext(ContextFlag, flag).
		WithContext(ContextPath, path)
}

// NotADirectory reports a declared path that exists but is not a directory.
func NotADirectory(flag, path string) *ErrorBuilder {
	return NewError(CategoryNotFound, path+" is not a directory").Fatal().
		WithContext(ContextFlag, flag).
		WithContext(ContextPath, path)
}

// GitError creates a version-control query error.
func GitError(message string) *ErrorBuilder {
	return NewError(CategoryGit, message).Fatal()
}

// BuildError creates a build processing error.
func BuildError(message string) *ErrorBuilder {
	return NewError(CategoryBuild, message)
}

// SubprocessFailure reports a child process that exited with an unexpected code.
func SubprocessFailure(program string, code int) *ErrorBuilder {
	return BuildError(program+" failed").
		WithContext(ContextExitCode, code)
}

// Interrupted reports a user-requested cancellation.
func Interrupted() *ErrorBuilder {
	return NewError(CategoryRuntime, "interrupted").Info().
		WithContext(ContextInterrupted, true)
}

// ExpectedExit carries a non-zero exit code the child was expected to return.
// It is propagated without a message.
func ExpectedExit(code int) *ErrorBuilder {
	return NewError(CategoryBuild, "expected exit").Info().
		WithContext(ContextExitCode, code).
		WithContext(ContextSilent, true)
}

// RuntimeError creates a runtime error.
func RuntimeError(message string) *ErrorBuilder {
	return NewError(CategoryRuntime, message).Fatal()
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
