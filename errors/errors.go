// Package errors provides error types and handling for chunked S3 transfers.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a transfer error with context about the operation that failed.
// It wraps the underlying AWS SDK error with additional context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "upload", "download", "list")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("shuttle.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("shuttle.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("shuttle.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("shuttle.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// ChunkError reports the terminal failure of a single chunk after its retry
// budget has been exhausted. Index is the 0-based chunk index and Attempts is
// the total number of transfer attempts that were made for the chunk.
type ChunkError struct {
	Index    int32
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d failed after %d attempts: %v", e.Index, e.Attempts, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// SizeMismatchError reports a post-transfer integrity verification failure:
// the destination reported a different size than the source provided.
type SizeMismatchError struct {
	Expected int64
	Actual   int64
}

// Error implements the error interface.
func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch after transfer: expected %d bytes, got %d", e.Expected, e.Actual)
}

// Is reports whether target matches the ErrSizeMismatch sentinel.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// Sentinel errors for transfer failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrEmptyObject indicates a transfer of a zero-size object was requested
	ErrEmptyObject = errors.New("shuttle: object is empty")

	// ErrTooManyChunks indicates the planned chunk count exceeds the configured
	// ceiling; the caller should raise the chunk size
	ErrTooManyChunks = errors.New("shuttle: too many chunks, increase chunk size")

	// ErrSessionFailed indicates a multipart session could not be opened or committed
	ErrSessionFailed = errors.New("shuttle: multipart session failed")

	// ErrSizeMismatch indicates the post-transfer size verification failed
	ErrSizeMismatch = errors.New("shuttle: size mismatch after transfer")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("shuttle: object not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("shuttle: invalid input")

	// ErrInvalidURI indicates that an S3 URI could not be parsed
	ErrInvalidURI = errors.New("shuttle: invalid s3 uri")
)

// IsObjectNotFound checks if an error indicates that an object was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsPlanError checks if an error was produced by chunk planning, before any
// network I/O was performed.
func IsPlanError(err error) bool {
	return errors.Is(err, ErrEmptyObject) || errors.Is(err, ErrTooManyChunks)
}
