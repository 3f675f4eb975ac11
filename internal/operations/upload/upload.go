// Package upload handles S3 object upload operations.
//
// Small objects go up in a single PutObject request. Files are uploaded
// through the chunked transfer engine: the file is split into fixed-size
// parts, parts are uploaded concurrently within a multipart session, and the
// committed object's size is verified against the source file.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bitrise-io/go-utils/v2/log"

	"github.com/blobkit/shuttle/errors"
	"github.com/blobkit/shuttle/internal/s3api"
	"github.com/blobkit/shuttle/internal/transfer"
	"github.com/blobkit/shuttle/internal/transfer/aggregator"
	"github.com/blobkit/shuttle/internal/transfer/planner"
	"github.com/blobkit/shuttle/internal/transfer/retry"
	"github.com/blobkit/shuttle/shuttletypes"
)

// Uploader handles S3 upload operations.
type Uploader struct {
	s3Client s3api.S3API
	logger   log.Logger
}

// New creates a new Uploader instance.
func New(s3Client s3api.S3API, logger log.Logger) *Uploader {
	return &Uploader{
		s3Client: s3Client,
		logger:   logger,
	}
}

// Put performs a simple single-request upload.
func (u *Uploader) Put(
	ctx context.Context,
	bucket, key string,
	data []byte,
	contentType string,
	startTime time.Time,
) (*shuttletypes.UploadResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	output, err := u.s3Client.PutObject(ctx, input)
	if err != nil {
		return nil, errors.NewObjectError("put", bucket, key, err)
	}

	return &shuttletypes.UploadResult{
		Key:      key,
		Size:     int64(len(data)),
		ETag:     aws.ToString(output.ETag),
		Parts:    1,
		Duration: time.Since(startTime),
	}, nil
}

// UploadFile uploads size bytes from src as a chunked multipart upload.
//
// Chunk planning happens before the multipart session is opened, so empty
// objects and chunk-count overflows fail without any remote side effects.
// Workers read disjoint byte ranges from src concurrently; src must support
// that, which os.File and the fs abstraction's ReadAt both do. After the
// session commits, the destination object's reported size is compared against
// size and a mismatch fails the transfer.
func (u *Uploader) UploadFile(
	ctx context.Context,
	bucket, key string,
	src io.ReaderAt,
	size int64,
	cfg *shuttletypes.TransferConfig,
	startTime time.Time,
) (*shuttletypes.UploadResult, error) {
	ranges, err := planner.Plan(size, cfg.ChunkSize, cfg.MaxChunks)
	if err != nil {
		return nil, err
	}

	uploadID, err := u.createSession(ctx, bucket, key, cfg.ContentType)
	if err != nil {
		return nil, err
	}

	u.logger.Debugf("uploading %s/%s: %d bytes in %d parts", bucket, key, size, len(ranges))

	opts := transfer.Options{
		WorkerBudget: cfg.WorkerBudget,
		Retry: retry.Policy{
			MaxAttempts: cfg.ChunkRetries,
			BaseDelay:   cfg.ChunkRetryDelay,
		},
		Logger: u.logger,
	}

	collector, err := transfer.Run(ctx, ranges, opts, func(ctx context.Context, r planner.Range) (string, []byte, error) {
		return u.uploadPart(ctx, bucket, key, uploadID, src, r)
	})
	if err != nil {
		u.abortSession(ctx, bucket, key, uploadID)
		return nil, errors.NewObjectError("uploadFile", bucket, key, err)
	}

	etag, err := u.completeSession(ctx, bucket, key, uploadID, collector.Parts())
	if err != nil {
		u.abortSession(ctx, bucket, key, uploadID)
		return nil, err
	}

	if err := u.verifySize(ctx, bucket, key, size); err != nil {
		return nil, err
	}

	u.logger.Debugf("uploaded %s/%s in %d parts", bucket, key, len(ranges))

	return &shuttletypes.UploadResult{
		Key:      key,
		Size:     size,
		ETag:     etag,
		Parts:    len(ranges),
		Duration: time.Since(startTime),
	}, nil
}

// uploadPart performs one upload attempt for one chunk.
func (u *Uploader) uploadPart(
	ctx context.Context,
	bucket, key, uploadID string,
	src io.ReaderAt,
	r planner.Range,
) (string, []byte, error) {
	buf := make([]byte, r.Length)
	if _, err := src.ReadAt(buf, r.Offset); err != nil {
		return "", nil, fmt.Errorf("read chunk %d at offset %d: %w", r.Index, r.Offset, err)
	}

	output, err := u.s3Client.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(r.PartNumber()),
		Body:       bytes.NewReader(buf),
	})
	if err != nil {
		return "", nil, err
	}
	return aws.ToString(output.ETag), nil, nil
}

// createSession opens the multipart session for a chunked upload.
func (u *Uploader) createSession(ctx context.Context, bucket, key, contentType string) (string, error) {
	input := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	output, err := u.s3Client.CreateMultipartUpload(ctx, input)
	if err != nil {
		return "", errors.NewObjectError("createSession", bucket, key, errors.ErrSessionFailed).
			WithMessage(err.Error())
	}
	uploadID := aws.ToString(output.UploadId)
	if uploadID == "" {
		return "", errors.NewObjectError("createSession", bucket, key, errors.ErrSessionFailed).
			WithMessage("store returned no upload id")
	}
	return uploadID, nil
}

// completeSession commits the multipart session with the ordered part list.
func (u *Uploader) completeSession(
	ctx context.Context,
	bucket, key, uploadID string,
	parts []aggregator.Part,
) (string, error) {
	completed := make([]awstypes.CompletedPart, len(parts))
	for i, p := range parts {
		completed[i] = awstypes.CompletedPart{
			PartNumber: aws.Int32(p.PartNumber),
			ETag:       aws.String(p.ETag),
		}
	}

	output, err := u.s3Client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &awstypes.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		return "", errors.NewObjectError("completeSession", bucket, key, errors.ErrSessionFailed).
			WithMessage(err.Error())
	}
	return aws.ToString(output.ETag), nil
}

// abortSession abandons a multipart session. Cleanup is best-effort: stores
// garbage-collect abandoned sessions, so errors are only logged.
func (u *Uploader) abortSession(ctx context.Context, bucket, key, uploadID string) {
	_, err := u.s3Client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		u.logger.Debugf("abort multipart session for %s/%s: %s", bucket, key, err)
	}
}

// verifySize compares the destination object's reported size with the source.
func (u *Uploader) verifySize(ctx context.Context, bucket, key string, expected int64) error {
	output, err := u.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.NewObjectError("verifySize", bucket, key, err)
	}
	actual := aws.ToInt64(output.ContentLength)
	if actual != expected {
		return errors.NewObjectError("verifySize", bucket, key, &errors.SizeMismatchError{
			Expected: expected,
			Actual:   actual,
		})
	}
	return nil
}
