// Package download handles S3 object download operations.
//
// Objects can be streamed whole, or fetched through the chunked transfer
// engine: the object is split into byte ranges, ranges are fetched
// concurrently, and the chunks are reassembled in offset order before the
// total byte count is verified against the object's declared content length.
package download

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bitrise-io/go-utils/v2/log"

	"github.com/blobkit/shuttle/errors"
	"github.com/blobkit/shuttle/internal/s3api"
	"github.com/blobkit/shuttle/internal/transfer"
	"github.com/blobkit/shuttle/internal/transfer/planner"
	"github.com/blobkit/shuttle/internal/transfer/retry"
	"github.com/blobkit/shuttle/shuttletypes"
)

// Downloader handles S3 download operations.
type Downloader struct {
	s3Client s3api.S3API
	logger   log.Logger
}

// New creates a new Downloader instance.
func New(s3Client s3api.S3API, logger log.Logger) *Downloader {
	return &Downloader{
		s3Client: s3Client,
		logger:   logger,
	}
}

// Stream downloads an object in one request and copies its body to writer.
func (d *Downloader) Stream(
	ctx context.Context,
	bucket, key string,
	writer io.Writer,
	startTime time.Time,
) (*shuttletypes.DownloadResult, error) {
	output, err := d.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if errors.IsStoreNotFound(err) {
			return nil, errors.NewObjectError("download", bucket, key, errors.ErrObjectNotFound)
		}
		return nil, errors.NewObjectError("download", bucket, key, err)
	}
	defer output.Body.Close()

	written, err := io.Copy(writer, output.Body)
	if err != nil {
		return nil, errors.NewObjectError("download", bucket, key, err)
	}

	return &shuttletypes.DownloadResult{
		Key:      key,
		Size:     written,
		Parts:    1,
		Duration: time.Since(startTime),
	}, nil
}

// Head returns the object's size via HeadObject.
func (d *Downloader) Head(ctx context.Context, bucket, key string) (int64, error) {
	output, err := d.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if errors.IsStoreNotFound(err) {
			return 0, errors.NewObjectError("head", bucket, key, errors.ErrObjectNotFound)
		}
		return 0, errors.NewObjectError("head", bucket, key, err)
	}
	return aws.ToInt64(output.ContentLength), nil
}

// DownloadChunked fetches an object through the chunked transfer engine and
// returns the assembled bytes.
//
// The object's size is learned from HeadObject, chunk ranges are planned from
// it, and each worker requests one byte span. Chunks arrive in arbitrary
// order and are reassembled by index; the assembled byte count is verified
// against the declared content length.
func (d *Downloader) DownloadChunked(
	ctx context.Context,
	bucket, key string,
	cfg *shuttletypes.TransferConfig,
	startTime time.Time,
) ([]byte, *shuttletypes.DownloadResult, error) {
	size, err := d.Head(ctx, bucket, key)
	if err != nil {
		return nil, nil, err
	}

	ranges, err := planner.Plan(size, cfg.ChunkSize, cfg.MaxChunks)
	if err != nil {
		return nil, nil, err
	}

	d.logger.Debugf("downloading %s/%s: %d bytes in %d chunks", bucket, key, size, len(ranges))

	opts := transfer.Options{
		WorkerBudget: cfg.WorkerBudget,
		Retry: retry.Policy{
			MaxAttempts: cfg.ChunkRetries,
			BaseDelay:   cfg.ChunkRetryDelay,
		},
		Logger: d.logger,
	}

	collector, err := transfer.Run(ctx, ranges, opts, func(ctx context.Context, r planner.Range) (string, []byte, error) {
		body, err := d.getRange(ctx, bucket, key, r)
		return "", body, err
	})
	if err != nil {
		return nil, nil, errors.NewObjectError("downloadChunked", bucket, key, err)
	}

	assembled := collector.Assemble()
	if int64(len(assembled)) != size {
		return nil, nil, errors.NewObjectError("downloadChunked", bucket, key, &errors.SizeMismatchError{
			Expected: size,
			Actual:   int64(len(assembled)),
		})
	}

	return assembled, &shuttletypes.DownloadResult{
		Key:      key,
		Size:     size,
		Parts:    len(ranges),
		Duration: time.Since(startTime),
	}, nil
}

// getRange performs one download attempt for one chunk.
func (d *Downloader) getRange(ctx context.Context, bucket, key string, r planner.Range) ([]byte, error) {
	// HTTP range headers are inclusive on both ends.
	rangeSpec := fmt.Sprintf("bytes=%d-%d", r.Offset, r.Offset+r.Length-1)

	output, err := d.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Range:  aws.String(rangeSpec),
	})
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("read chunk %d body: %w", r.Index, err)
	}
	if int64(len(body)) != r.Length {
		// Truncated bodies are connection failures in disguise; let the
		// retry policy take another attempt.
		return nil, fmt.Errorf("chunk %d: requested %d bytes, got %d: %w",
			r.Index, r.Length, len(body), io.ErrUnexpectedEOF)
	}
	return body, nil
}
