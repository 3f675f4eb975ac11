package shuttle

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/blobkit/shuttle/errors"
	"github.com/blobkit/shuttle/internal/s3api"
	"github.com/blobkit/shuttle/shuttletypes"
)

// Client provides chunked and single-shot transfers against one S3 endpoint.
// It is safe for concurrent use.
type Client struct {
	s3Client s3api.S3API
	cfg      shuttletypes.ClientConfig
	fs       fs.Filesystem
	logger   log.Logger
}

// New creates a client with the provided options. Credentials come from the
// SDK's default chain unless a custom AWS config is supplied.
//
// Example:
//
//	client, err := shuttle.New(
//	    shuttle.WithRegion("eu-central-1"),
//	    shuttle.WithChunkSize(16_000_000),
//	)
func New(opts ...shuttletypes.Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var awsCfg aws.Config
	var err error
	if cfg.CustomAWSConfig != nil {
		awsCfg = *cfg.CustomAWSConfig
	} else {
		awsCfg, err = config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, errors.NewError("newClient", err)
		}
	}

	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}
	if cfg.SDKMaxAttempts > 0 {
		awsCfg.RetryMaxAttempts = cfg.SDKMaxAttempts
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if cfg.CustomHTTPClient != nil {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = cfg.CustomHTTPClient
		})
	} else if cfg.Timeout > 0 {
		httpClient := &http.Client{Timeout: cfg.Timeout}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return newClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
}

// NewWithClient creates a client around a custom S3API implementation. This
// is primarily used for testing with mocked clients.
func NewWithClient(s3Client s3api.S3API, opts ...shuttletypes.Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newClient(s3Client, cfg)
}

func newClient(s3Client s3api.S3API, cfg shuttletypes.ClientConfig) *Client {
	filesystem := cfg.Filesystem
	if filesystem == nil {
		filesystem = billy.NewOSFS("/")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewLogger()
	}
	return &Client{
		s3Client: s3Client,
		cfg:      cfg,
		fs:       filesystem,
		logger:   logger,
	}
}

func defaultConfig() shuttletypes.ClientConfig {
	return shuttletypes.ClientConfig{
		SDKMaxAttempts:  shuttletypes.DefaultSDKMaxAttempts,
		ChunkSize:       shuttletypes.DefaultChunkSize,
		MaxChunks:       shuttletypes.DefaultMaxChunks,
		WorkerBudget:    shuttletypes.DefaultWorkerBudget,
		ChunkRetries:    shuttletypes.DefaultChunkRetries,
		ChunkRetryDelay: shuttletypes.DefaultChunkRetryDelay,
	}
}

// transferConfig derives per-transfer tuning from the client configuration
// plus any per-call overrides.
func (c *Client) transferConfig(opts []shuttletypes.TransferOption) *shuttletypes.TransferConfig {
	cfg := &shuttletypes.TransferConfig{
		ChunkSize:       c.cfg.ChunkSize,
		MaxChunks:       c.cfg.MaxChunks,
		WorkerBudget:    c.cfg.WorkerBudget,
		ChunkRetries:    c.cfg.ChunkRetries,
		ChunkRetryDelay: c.cfg.ChunkRetryDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
