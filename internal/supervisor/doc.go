// Package supervisor starts an external program and hands its combined
// stdout/stderr back one line at a time while it runs.
//
// The child is a producer of lines into a channel fed by a single reader
// goroutine; the caller is the sole consumer. Lines arrive as the child
// writes them, never batched until exit. Callers must drain Lines until it is
// closed before calling Wait.
//
// Cancellation is cooperative: when the context passed to Start is done the
// supervisor closes the child's stdin pipe (if it has one) and the child is
// expected to notice EOF and exit. The child is never killed.
package supervisor
