// Package errors provides the structured error type shared by polyglot
// packages: machine-readable codes, a user-safe message, retryable
// detection and an optional wrapped cause.
package errors
