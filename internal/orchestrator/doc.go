// Package orchestrator drives one containerized documentation build.
//
// A run builds the environment image, translates the command line into an
// invocation plan, starts the container runtime under the supervisor with a
// moderator attached to its output, and maps the outcome onto an error that
// carries the exit code the process should use.
package orchestrator
