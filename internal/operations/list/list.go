// Package list handles S3 object listing with pagination.
package list

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/blobkit/shuttle/errors"
	"github.com/blobkit/shuttle/internal/s3api"
)

// Lister handles listing of S3 objects under a prefix.
type Lister struct {
	s3Client s3api.S3API
}

// New creates a new Lister.
func New(s3Client s3api.S3API) *Lister {
	return &Lister{
		s3Client: s3Client,
	}
}

// Keys returns all object keys under prefix, following continuation tokens
// across pages. Keys ending in "/" are directory markers and are skipped.
func (l *Lister) Keys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	err := l.walk(ctx, bucket, prefix, func(key string, _ int64) {
		keys = append(keys, key)
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// KeysWithSizes returns all object keys under prefix mapped to their sizes.
func (l *Lister) KeysWithSizes(ctx context.Context, bucket, prefix string) (map[string]int64, error) {
	sizes := make(map[string]int64)
	err := l.walk(ctx, bucket, prefix, func(key string, size int64) {
		sizes[key] = size
	})
	if err != nil {
		return nil, err
	}
	return sizes, nil
}

// walk visits every non-marker object under prefix, one page at a time.
func (l *Lister) walk(ctx context.Context, bucket, prefix string, visit func(key string, size int64)) error {
	var continuationToken *string
	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		}

		output, err := l.s3Client.ListObjectsV2(ctx, input)
		if err != nil {
			return errors.NewError("list", err).WithBucket(bucket)
		}

		for _, obj := range output.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			visit(key, aws.ToInt64(obj.Size))
		}

		if output.NextContinuationToken == nil {
			return nil
		}
		continuationToken = output.NextContinuationToken
	}
}
