// Package errors provides the classified error primitives used across docbuild.
//
// Every failure that can end a run is a ClassifiedError carrying a category,
// a severity and structured context. The CLI adapter turns those into the
// process exit code and the single line printed for the user.
//
// Key features:
//   - ErrorCategory: broad classification (validation, not_found, build, runtime)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and user-facing formatting
//
// Example usage:
//
//	err := errors.NotFound("--reference", path).Build()
//
//	err := errors.BuildError("inner build tool failed").
//		WithContext(errors.ContextExitCode, 2).
//		Build()
package errors
