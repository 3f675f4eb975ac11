// Package shuttletypes provides shared type definitions for the shuttle module.
package shuttletypes

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// Defaults mirror the transfer engine's stock tuning. They can be overridden
// per client via options or per call via TransferOption.
const (
	// DefaultChunkSize is the size of a single transferred chunk (10 MB).
	DefaultChunkSize int64 = 10_000_000

	// DefaultMaxChunks is the ceiling on the number of chunks per transfer.
	DefaultMaxChunks int64 = 10_000

	// DefaultWorkerBudget is how many chunk workers may run concurrently.
	DefaultWorkerBudget = 10

	// DefaultChunkRetries is the total attempt budget per chunk.
	DefaultChunkRetries = 5

	// DefaultChunkRetryDelay is the base delay between chunk retry attempts.
	// The effective delay grows linearly with the attempt number.
	DefaultChunkRetryDelay = 500 * time.Millisecond

	// DefaultSDKMaxAttempts is the AWS SDK level retry budget for single-shot
	// request/response calls.
	DefaultSDKMaxAttempts = 10
)

// ClientConfig holds the configuration for a shuttle client.
type ClientConfig struct {
	// Region is the AWS region to use
	Region string

	// Endpoint is a custom S3 endpoint (S3-compatible stores, LocalStack)
	Endpoint string

	// ForcePathStyle forces path-style addressing instead of virtual-hosted style
	ForcePathStyle bool

	// SDKMaxAttempts is the AWS SDK retry budget for individual requests
	SDKMaxAttempts int

	// Timeout applies to the underlying HTTP client; zero means no timeout
	Timeout time.Duration

	// ChunkSize is the chunk size in bytes for chunked transfers
	ChunkSize int64

	// MaxChunks is the ceiling on chunk count per transfer
	MaxChunks int64

	// WorkerBudget bounds how many chunk workers run concurrently
	WorkerBudget int

	// ChunkRetries is the total attempt budget per chunk
	ChunkRetries int

	// ChunkRetryDelay is the base backoff delay between chunk attempts
	ChunkRetryDelay time.Duration

	// Logger receives debug output for transfers; defaults to log.NewLogger()
	Logger log.Logger

	// Filesystem is the filesystem abstraction used for local file access
	Filesystem fs.Filesystem

	// CustomAWSConfig overrides the default AWS configuration loading
	CustomAWSConfig *aws.Config

	// CustomHTTPClient overrides the SDK's HTTP client
	CustomHTTPClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*ClientConfig)

// TransferConfig carries the per-transfer tuning derived from the client
// configuration plus any per-call overrides.
type TransferConfig struct {
	// ChunkSize is the chunk size in bytes
	ChunkSize int64

	// MaxChunks is the ceiling on chunk count
	MaxChunks int64

	// WorkerBudget bounds concurrent chunk workers
	WorkerBudget int

	// ChunkRetries is the total attempt budget per chunk
	ChunkRetries int

	// ChunkRetryDelay is the base backoff delay between attempts
	ChunkRetryDelay time.Duration

	// ContentType is the MIME type recorded on upload
	ContentType string
}

// TransferOption is a functional option applied to a single transfer.
type TransferOption func(*TransferConfig)

// UploadResult contains the outcome of a completed upload.
type UploadResult struct {
	// Key is the S3 object key
	Key string

	// Size is the number of bytes uploaded
	Size int64

	// ETag is the S3 entity tag of the final object
	ETag string

	// Parts is the number of chunks the object was uploaded in (1 for simple puts)
	Parts int

	// Duration is how long the upload took
	Duration time.Duration
}

// DownloadResult contains the outcome of a completed download.
type DownloadResult struct {
	// Key is the S3 object key
	Key string

	// Size is the number of bytes downloaded
	Size int64

	// Parts is the number of chunks the object was downloaded in (1 for streams)
	Parts int

	// Duration is how long the download took
	Duration time.Duration
}
