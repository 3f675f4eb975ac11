package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobkit/shuttle/errors"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name        string
		totalSize   int64
		chunkSize   int64
		maxChunks   int64
		wantCount   int
		wantErr     error
		wantLengths []int64
	}{
		{
			name:        "exact multiple",
			totalSize:   30,
			chunkSize:   10,
			maxChunks:   100,
			wantCount:   3,
			wantLengths: []int64{10, 10, 10},
		},
		{
			name:        "short final chunk",
			totalSize:   25_000_000,
			chunkSize:   10_000_000,
			maxChunks:   10_000,
			wantCount:   3,
			wantLengths: []int64{10_000_000, 10_000_000, 5_000_000},
		},
		{
			name:        "object smaller than one chunk",
			totalSize:   7,
			chunkSize:   10,
			maxChunks:   100,
			wantCount:   1,
			wantLengths: []int64{7},
		},
		{
			name:        "single byte",
			totalSize:   1,
			chunkSize:   10_000_000,
			maxChunks:   10_000,
			wantCount:   1,
			wantLengths: []int64{1},
		},
		{
			name:      "count exactly at ceiling",
			totalSize: 100,
			chunkSize: 10,
			maxChunks: 10,
			wantCount: 10,
		},
		{
			name:      "empty object",
			totalSize: 0,
			chunkSize: 10,
			maxChunks: 100,
			wantErr:   errors.ErrEmptyObject,
		},
		{
			name:      "too many chunks",
			totalSize: 101,
			chunkSize: 10,
			maxChunks: 10,
			wantErr:   errors.ErrTooManyChunks,
		},
		{
			name:      "ceiling uses rounded-up count",
			totalSize: 120_000_000_000, // 12,000 chunks of 10MB
			chunkSize: 10_000_000,
			maxChunks: 10_000,
			wantErr:   errors.ErrTooManyChunks,
		},
		{
			name:      "negative size",
			totalSize: -1,
			chunkSize: 10,
			maxChunks: 100,
			wantErr:   errors.ErrInvalidInput,
		},
		{
			name:      "zero chunk size",
			totalSize: 10,
			chunkSize: 0,
			maxChunks: 100,
			wantErr:   errors.ErrInvalidInput,
		},
		{
			name:      "no ceiling when maxChunks is zero",
			totalSize: 1000,
			chunkSize: 1,
			maxChunks: 0,
			wantCount: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, err := Plan(tt.totalSize, tt.chunkSize, tt.maxChunks)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ranges)
				return
			}
			require.NoError(t, err)
			require.Len(t, ranges, tt.wantCount)

			if tt.wantLengths != nil {
				for i, want := range tt.wantLengths {
					assert.Equal(t, want, ranges[i].Length, "chunk %d length", i)
				}
			}
		})
	}
}

// The returned ranges must partition [0, totalSize) exactly: ascending
// contiguous indexes, no gaps, no overlaps.
func TestPlan_PartitionsObjectExactly(t *testing.T) {
	cases := []struct {
		totalSize int64
		chunkSize int64
	}{
		{1, 1},
		{10, 3},
		{99, 100},
		{100, 100},
		{101, 100},
		{25_000_000, 10_000_000},
		{1_000_000, 4096},
	}

	for _, tc := range cases {
		ranges, err := Plan(tc.totalSize, tc.chunkSize, 0)
		require.NoError(t, err)

		var next int64
		for i, r := range ranges {
			assert.Equal(t, int32(i), r.Index)
			assert.Equal(t, next, r.Offset, "size=%d chunk=%d index=%d", tc.totalSize, tc.chunkSize, i)
			assert.Positive(t, r.Length)
			if i < len(ranges)-1 {
				assert.Equal(t, tc.chunkSize, r.Length)
			}
			next = r.Offset + r.Length
		}
		assert.Equal(t, tc.totalSize, next, "ranges must cover the whole object")
	}
}

func TestRange_PartNumber(t *testing.T) {
	assert.Equal(t, int32(1), Range{Index: 0}.PartNumber())
	assert.Equal(t, int32(42), Range{Index: 41}.PartNumber())
}

func TestPlan_FailsBeforeAnyWork(t *testing.T) {
	_, err := Plan(0, 10_000_000, 10_000)
	assert.True(t, errors.IsPlanError(err))

	_, err = Plan(1<<40, 10_000, 10_000)
	assert.True(t, errors.IsPlanError(err))
}
