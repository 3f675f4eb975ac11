package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"wrapped cancellation", fmt.Errorf("acquire permit: %w", context.Canceled), false},

		{"throttle SlowDown", &smithy.GenericAPIError{Code: "SlowDown"}, true},
		{"throttle Throttling", &smithy.GenericAPIError{Code: "Throttling"}, true},
		{"server InternalError", &smithy.GenericAPIError{Code: "InternalError"}, true},
		{"RequestTimeout", &smithy.GenericAPIError{Code: "RequestTimeout"}, true},
		{"server fault unknown code", &smithy.GenericAPIError{Code: "Unmapped", Fault: smithy.FaultServer}, true},

		{"client AccessDenied", &smithy.GenericAPIError{Code: "AccessDenied", Fault: smithy.FaultClient}, false},
		{"client NoSuchKey", &smithy.GenericAPIError{Code: "NoSuchKey", Fault: smithy.FaultClient}, false},

		{"net.Error timeout", fakeNetError{}, true},
		{"wrapped net.Error", fmt.Errorf("upload part: %w", fakeNetError{}), true},
		{"net.OpError", &net.OpError{Op: "read", Err: stderrors.New("connection reset by peer")}, true},
		{"truncated body", fmt.Errorf("got 4 of 10 bytes: %w", io.ErrUnexpectedEOF), true},

		{"plain error", stderrors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsStoreNotFound(t *testing.T) {
	assert.True(t, IsStoreNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, IsStoreNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.True(t, IsStoreNotFound(&smithy.GenericAPIError{Code: "NoSuchBucket"}))
	assert.True(t, IsStoreNotFound(fmt.Errorf("head: %w", &smithy.GenericAPIError{Code: "NotFound"})))
	assert.False(t, IsStoreNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, IsStoreNotFound(stderrors.New("boom")))
	assert.False(t, IsStoreNotFound(nil))
}
