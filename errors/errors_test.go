package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	base := stderrors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bucket and key",
			err:  NewObjectError("upload", "my-bucket", "my-key", base),
			want: "shuttle.upload my-bucket/my-key: boom",
		},
		{
			name: "bucket only",
			err:  NewError("list", base).WithBucket("my-bucket"),
			want: "shuttle.list bucket my-bucket: boom",
		},
		{
			name: "key only",
			err:  NewError("get", base).WithKey("my-key"),
			want: "shuttle.get object my-key: boom",
		},
		{
			name: "op only",
			err:  NewError("plan", base),
			want: "shuttle.plan: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_UnwrapChain(t *testing.T) {
	err := NewObjectError("upload", "b", "k", ErrSessionFailed).WithMessage("store said no")
	assert.ErrorIs(t, err, ErrSessionFailed)
	assert.ErrorContains(t, err, "store said no")

	var e *Error
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &e)
	assert.Equal(t, "upload", e.Op)
}

func TestChunkError(t *testing.T) {
	base := stderrors.New("connection reset")
	err := &ChunkError{Index: 7, Attempts: 5, Err: base}

	assert.Equal(t, "chunk 7 failed after 5 attempts: connection reset", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestSizeMismatchError(t *testing.T) {
	err := &SizeMismatchError{Expected: 25_000_000, Actual: 24_999_999}

	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.ErrorContains(t, err, "expected 25000000 bytes, got 24999999")

	wrapped := NewObjectError("verifySize", "b", "k", err)
	assert.ErrorIs(t, wrapped, ErrSizeMismatch)

	var mismatch *SizeMismatchError
	require.ErrorAs(t, wrapped, &mismatch)
	assert.Equal(t, int64(25_000_000), mismatch.Expected)
}

func TestIsObjectNotFound(t *testing.T) {
	assert.True(t, IsObjectNotFound(ErrObjectNotFound))
	assert.True(t, IsObjectNotFound(NewObjectError("get", "b", "k", ErrObjectNotFound)))
	assert.False(t, IsObjectNotFound(stderrors.New("something else")))
	assert.False(t, IsObjectNotFound(nil))
}

func TestIsPlanError(t *testing.T) {
	assert.True(t, IsPlanError(NewError("plan", ErrEmptyObject)))
	assert.True(t, IsPlanError(NewError("plan", ErrTooManyChunks)))
	assert.False(t, IsPlanError(NewError("plan", ErrSessionFailed)))
	assert.False(t, IsPlanError(nil))
}
