// Package validation provides input validation for bucket names and object keys.
//
// Inputs are checked before any request is sent so malformed names fail fast
// with a useful error instead of a confusing store-side rejection.
package validation

import (
	"strings"
	"unicode"

	"github.com/blobkit/shuttle/errors"
)

// ValidateBucketName checks that a bucket name is DNS-compliant according to
// the S3 naming rules.
func ValidateBucketName(bucket string) error {
	if bucket == "" {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}
	if len(bucket) < 3 || len(bucket) > 63 {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name must be between 3 and 63 characters")
	}
	for _, r := range bucket {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' && r != '.' {
			return errors.NewError("validateBucketName", errors.ErrInvalidInput).
				WithBucket(bucket).
				WithMessage("bucket name may only contain lowercase letters, digits, hyphens and dots")
		}
	}
	if strings.HasPrefix(bucket, "-") || strings.HasSuffix(bucket, "-") ||
		strings.HasPrefix(bucket, ".") || strings.HasSuffix(bucket, ".") {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name must start and end with a letter or digit")
	}
	if strings.Contains(bucket, "..") {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name must not contain consecutive dots")
	}
	return nil
}

// ValidateObjectKey checks that an object key is usable: non-empty, within
// the 1024-byte S3 limit, free of path traversal sequences and control
// characters.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}
	if len(key) > 1024 {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot exceed 1024 bytes")
	}
	if hasPathTraversal(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot contain path traversal sequences")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
				WithKey(key).
				WithMessage("object key cannot contain control characters")
		}
	}
	return nil
}

func hasPathTraversal(key string) bool {
	if key == ".." || strings.HasPrefix(key, "../") || strings.HasSuffix(key, "/..") {
		return true
	}
	return strings.Contains(key, "/../")
}
