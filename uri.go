package shuttle

import (
	"net/url"

	"github.com/blobkit/shuttle/errors"
)

// Path is a bucket plus key prefix parsed from an s3:// URI.
type Path struct {
	Bucket string
	Prefix string
}

// ParseURI parses an s3://bucket/prefix URI into its bucket and prefix.
// The prefix may be empty; any other scheme or a missing bucket fails with
// ErrInvalidURI.
func ParseURI(uri string) (Path, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return Path{}, errors.NewError("parseURI", errors.ErrInvalidURI).
			WithMessage(err.Error())
	}
	if parsed.Scheme != "s3" {
		return Path{}, errors.NewError("parseURI", errors.ErrInvalidURI).
			WithMessage("scheme must be s3://")
	}
	if parsed.Host == "" {
		return Path{}, errors.NewError("parseURI", errors.ErrInvalidURI).
			WithMessage("missing bucket name")
	}

	prefix := parsed.Path
	if len(prefix) > 0 && prefix[0] == '/' {
		prefix = prefix[1:]
	}
	return Path{Bucket: parsed.Host, Prefix: prefix}, nil
}

// String renders the path back as an s3:// URI.
func (p Path) String() string {
	return "s3://" + p.Bucket + "/" + p.Prefix
}
