package shuttle

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/blobkit/shuttle/shuttletypes"
)

// WithRegion sets the AWS region. If not specified, the region from the
// default credential chain is used.
func WithRegion(region string) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL. This is useful for
// S3-compatible stores or local testing with LocalStack.
func WithEndpoint(endpoint string) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces path-style URLs instead of virtual-hosted style.
// Required for most S3-compatible services.
func WithForcePathStyle(forcePathStyle bool) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithSDKMaxAttempts sets the AWS SDK retry budget for individual requests.
// This is independent of the per-chunk retry budget.
func WithSDKMaxAttempts(attempts int) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if attempts > 0 {
			c.SDKMaxAttempts = attempts
		}
	}
}

// WithTimeout sets the timeout for the underlying HTTP client.
// Default is no timeout.
func WithTimeout(timeout time.Duration) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithChunkSize sets the chunk size in bytes for chunked transfers.
// Default is 10 MB.
func WithChunkSize(size int64) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if size > 0 {
			c.ChunkSize = size
		}
	}
}

// WithChunkSizeString sets the chunk size from a human-readable value such
// as "10MB" or "1.5GB". Invalid values are ignored; use
// shuttletypes.ParseSize directly when the input is untrusted.
func WithChunkSizeString(size string) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if n, err := shuttletypes.ParseSize(size); err == nil {
			c.ChunkSize = n
		}
	}
}

// WithMaxChunks sets the ceiling on the number of chunks per transfer.
// Transfers that would exceed it fail before any network I/O.
func WithMaxChunks(maxChunks int64) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if maxChunks > 0 {
			c.MaxChunks = maxChunks
		}
	}
}

// WithWorkerBudget bounds how many chunk workers run concurrently.
// Default is 10.
func WithWorkerBudget(budget int) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if budget > 0 {
			c.WorkerBudget = budget
		}
	}
}

// WithChunkRetries sets the total attempt budget per chunk, including the
// first attempt. Default is 5.
func WithChunkRetries(retries int) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if retries > 0 {
			c.ChunkRetries = retries
		}
	}
}

// WithChunkRetryDelay sets the base backoff delay between chunk attempts.
// The effective delay grows linearly with the attempt number.
func WithChunkRetryDelay(delay time.Duration) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		if delay > 0 {
			c.ChunkRetryDelay = delay
		}
	}
}

// WithLogger sets the logger that receives debug output for transfers.
func WithLogger(logger log.Logger) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets a custom filesystem implementation for local file
// access. Useful for testing with in-memory filesystems.
func WithFilesystem(filesystem fs.Filesystem) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithAWSConfig provides a custom AWS configuration, overriding the default
// configuration loading behavior.
func WithAWSConfig(config *aws.Config) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithCustomHTTPClient provides a custom HTTP client for the SDK, giving
// full control over timeouts and proxies.
func WithCustomHTTPClient(client *http.Client) shuttletypes.Option {
	return func(c *shuttletypes.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithTransferChunkSize overrides the chunk size for a single transfer.
func WithTransferChunkSize(size int64) shuttletypes.TransferOption {
	return func(c *shuttletypes.TransferConfig) {
		if size > 0 {
			c.ChunkSize = size
		}
	}
}

// WithTransferMaxChunks overrides the chunk-count ceiling for a single transfer.
func WithTransferMaxChunks(maxChunks int64) shuttletypes.TransferOption {
	return func(c *shuttletypes.TransferConfig) {
		if maxChunks > 0 {
			c.MaxChunks = maxChunks
		}
	}
}

// WithTransferWorkerBudget overrides the worker budget for a single transfer.
func WithTransferWorkerBudget(budget int) shuttletypes.TransferOption {
	return func(c *shuttletypes.TransferConfig) {
		if budget > 0 {
			c.WorkerBudget = budget
		}
	}
}

// WithTransferChunkRetries overrides the per-chunk attempt budget for a
// single transfer.
func WithTransferChunkRetries(retries int) shuttletypes.TransferOption {
	return func(c *shuttletypes.TransferConfig) {
		if retries > 0 {
			c.ChunkRetries = retries
		}
	}
}

// WithContentType sets the content type recorded on upload. When unset the
// content type is detected from the file content or key extension.
func WithContentType(contentType string) shuttletypes.TransferOption {
	return func(c *shuttletypes.TransferConfig) {
		c.ContentType = contentType
	}
}
