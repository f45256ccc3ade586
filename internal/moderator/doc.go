// Package moderator decides where each line of build output goes.
//
// Lines produced during an initial quiet window are held back. When the
// window elapses the held lines are forwarded in order and every later line
// goes straight through. If the build finishes inside the window the held
// lines go to the error sink on failure and to the debug sink on success, so
// a fast successful run prints nothing while a fast failure shows everything.
// An interrupt flushes held lines to the info sink.
//
// A Moderator is driven by a single goroutine and is not safe for concurrent
// use.
package moderator
