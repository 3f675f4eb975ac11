package shuttle

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/blobkit/shuttle/errors"
	"github.com/blobkit/shuttle/internal/operations/download"
	"github.com/blobkit/shuttle/internal/operations/list"
	"github.com/blobkit/shuttle/internal/operations/upload"
	"github.com/blobkit/shuttle/internal/validation"
	"github.com/blobkit/shuttle/shuttletypes"
)

// DefaultContentType is used when content detection cannot classify an object.
const DefaultContentType = "application/octet-stream"

// Upload reads all of reader and stores it as a single object. Content type
// is taken from WithContentType, or detected from the data, or derived from
// the key's extension.
//
// For large payloads prefer UploadFile, which transfers in bounded-memory
// chunks instead of buffering the whole reader.
func (c *Client) Upload(
	ctx context.Context,
	bucket, key string,
	reader io.Reader,
	opts ...shuttletypes.TransferOption,
) (*shuttletypes.UploadResult, error) {
	if err := validateTarget("upload", bucket, key); err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, errors.NewObjectError("upload", bucket, key, errors.ErrInvalidInput).
			WithMessage("reader cannot be nil")
	}

	cfg := c.transferConfig(opts)
	startTime := time.Now()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewObjectError("upload", bucket, key, err)
	}

	contentType := cfg.ContentType
	if contentType == "" {
		contentType = detectContentTypeFromData(data, key)
	}

	uploader := upload.New(c.s3Client, c.logger)
	return uploader.Put(ctx, bucket, key, data, contentType, startTime)
}

// UploadFile uploads a local file as a chunked multipart transfer.
//
// The file is split into fixed-size chunks, chunks are uploaded concurrently
// within the worker budget, and each chunk retries independently on transient
// failures. Empty files and files that would exceed the chunk-count ceiling
// are rejected before any remote call. After the upload commits, the stored
// object's size is verified against the local file.
func (c *Client) UploadFile(
	ctx context.Context,
	bucket, key, path string,
	opts ...shuttletypes.TransferOption,
) (*shuttletypes.UploadResult, error) {
	if err := validateTarget("uploadFile", bucket, key); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.NewObjectError("uploadFile", bucket, key, errors.ErrInvalidInput).
			WithMessage("path cannot be empty")
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, errors.NewObjectError("uploadFile", bucket, key, err)
	}
	if info.IsDir() {
		return nil, errors.NewObjectError("uploadFile", bucket, key, errors.ErrInvalidInput).
			WithMessage("path points to a directory, not a file")
	}

	cfg := c.transferConfig(opts)
	if cfg.ContentType == "" {
		cfg.ContentType = c.detectContentType(path)
	}

	file, err := c.fs.Open(path)
	if err != nil {
		return nil, errors.NewObjectError("uploadFile", bucket, key, err)
	}
	defer file.Close()

	uploader := upload.New(c.s3Client, c.logger)
	return uploader.UploadFile(ctx, bucket, key, file, info.Size(), cfg, time.Now())
}

// Download streams an object's body to writer in a single request.
func (c *Client) Download(
	ctx context.Context,
	bucket, key string,
	writer io.Writer,
) (*shuttletypes.DownloadResult, error) {
	if err := validateTarget("download", bucket, key); err != nil {
		return nil, err
	}
	if writer == nil {
		return nil, errors.NewObjectError("download", bucket, key, errors.ErrInvalidInput).
			WithMessage("writer cannot be nil")
	}

	downloader := download.New(c.s3Client, c.logger)
	return downloader.Stream(ctx, bucket, key, writer, time.Now())
}

// DownloadFile fetches an object through the chunked transfer engine and
// writes the assembled bytes to a local file.
//
// The object's size is learned first, byte ranges are planned from it, and
// ranges are fetched concurrently within the worker budget. The assembled
// byte count is verified against the object's declared size before the file
// is written.
func (c *Client) DownloadFile(
	ctx context.Context,
	bucket, key, path string,
	opts ...shuttletypes.TransferOption,
) (*shuttletypes.DownloadResult, error) {
	if err := validateTarget("downloadFile", bucket, key); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.NewObjectError("downloadFile", bucket, key, errors.ErrInvalidInput).
			WithMessage("path cannot be empty")
	}

	cfg := c.transferConfig(opts)
	downloader := download.New(c.s3Client, c.logger)

	data, result, err := downloader.DownloadChunked(ctx, bucket, key, cfg, time.Now())
	if err != nil {
		return nil, err
	}

	file, err := c.fs.Create(path)
	if err != nil {
		return nil, errors.NewObjectError("downloadFile", bucket, key, err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return nil, errors.NewObjectError("downloadFile", bucket, key, err)
	}
	return result, nil
}

// Get returns an object's full contents. Missing objects fail with
// ErrObjectNotFound.
func (c *Client) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateTarget("get", bucket, key); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	downloader := download.New(c.s3Client, c.logger)
	if _, err := downloader.Stream(ctx, bucket, key, &buf, time.Now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TryGet returns an object's full contents, reporting absence without an
// error: a missing object yields (nil, false, nil).
func (c *Client) TryGet(ctx context.Context, bucket, key string) ([]byte, bool, error) {
	data, err := c.Get(ctx, bucket, key)
	if err != nil {
		if errors.IsObjectNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Head returns an object's size in bytes without fetching its body.
func (c *Client) Head(ctx context.Context, bucket, key string) (int64, error) {
	if err := validateTarget("head", bucket, key); err != nil {
		return 0, err
	}

	downloader := download.New(c.s3Client, c.logger)
	return downloader.Head(ctx, bucket, key)
}

// List returns all object keys under prefix, following pagination across
// pages. Directory markers are skipped.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}

	lister := list.New(c.s3Client)
	return lister.Keys(ctx, bucket, prefix)
}

// ListWithSizes returns all object keys under prefix mapped to their sizes.
func (c *Client) ListWithSizes(ctx context.Context, bucket, prefix string) (map[string]int64, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}

	lister := list.New(c.s3Client)
	return lister.KeysWithSizes(ctx, bucket, prefix)
}

func validateTarget(op, bucket, key string) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return errors.NewObjectError(op, bucket, key, errors.ErrInvalidInput).
			WithMessage(err.Error())
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return errors.NewObjectError(op, bucket, key, errors.ErrInvalidInput).
			WithMessage(err.Error())
	}
	return nil
}

// detectContentType sniffs a local file's content, falling back to its
// extension when the file cannot be read.
func (c *Client) detectContentType(path string) string {
	file, err := c.fs.Open(path)
	if err != nil {
		return detectContentTypeFromExtension(path)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String()
		}
	}
	return detectContentTypeFromExtension(path)
}

func detectContentTypeFromData(data []byte, key string) string {
	if len(data) > 0 {
		if mt := mimetype.Detect(data); mt != nil {
			return mt.String()
		}
	}
	return detectContentTypeFromExtension(key)
}

func detectContentTypeFromExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return DefaultContentType
}
