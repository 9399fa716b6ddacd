// File: pkg/transform/errors.go
package transform

import "errors"

// Error categories carried in Result.Err. Callers match them with errors.Is.
var (
	// ErrInvalidInput indicates the root path does not resolve to a directory.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIO indicates a filesystem failure while listing, reading or writing.
	ErrIO = errors.New("i/o failure")

	// ErrNoCodeFiles indicates the traversal produced no file blocks.
	ErrNoCodeFiles = errors.New("no code files found in directory")

	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
