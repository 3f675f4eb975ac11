package errors

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/aws/smithy-go"
)

// retryableCodes are S3 error codes that indicate a transient server-side
// condition worth retrying.
var retryableCodes = map[string]bool{
	"InternalError":       true,
	"ServiceUnavailable":  true,
	"SlowDown":            true,
	"Throttling":          true,
	"ThrottlingException": true,
	"RequestTimeout":      true,
	"BadDigest":           true,
}

// IsTransient reports whether err is worth retrying: a throttle or server-side
// S3 error, or a network-level failure. Client errors (missing key, access
// denied, invalid request) and context cancellation are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if retryableCodes[apiErr.ErrorCode()] {
			return true
		}
		return apiErr.ErrorFault() == smithy.FaultServer
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// A truncated response body is a connection failure in disguise.
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// Connection resets and similar transport failures reach us as plain
	// wrapped errors from the SDK's HTTP client.
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// IsStoreNotFound reports whether err is the store's way of saying the object
// does not exist (NoSuchKey from GetObject, NotFound from HeadObject).
func IsStoreNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return code == "NoSuchKey" || code == "NotFound" || code == "NoSuchBucket"
}
