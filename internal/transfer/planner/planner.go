// Package planner computes chunk boundaries for chunked transfers.
//
// Planning is a pure computation: it performs no I/O and fails fast, before
// any network call is made, when the object is empty or the resulting chunk
// count would exceed the configured ceiling.
package planner

import (
	"fmt"

	"github.com/blobkit/shuttle/errors"
)

// Range describes one contiguous chunk of an object.
type Range struct {
	// Index is the 0-based chunk index; indexes are contiguous
	Index int32

	// Offset is the byte offset of the chunk within the object
	Offset int64

	// Length is the chunk length in bytes; only the last chunk may be short
	Length int64
}

// PartNumber returns the 1-based multipart part number for the range.
func (r Range) PartNumber() int32 {
	return r.Index + 1
}

// Plan splits [0, totalSize) into ranges of at most chunkSize bytes.
//
// The returned ranges partition the object exactly: ascending by index, no
// gaps, no overlaps, and the final range covers the remainder. Plan returns
// errors.ErrEmptyObject for zero-size objects and errors.ErrTooManyChunks
// when ceil(totalSize/chunkSize) exceeds maxChunks.
func Plan(totalSize, chunkSize, maxChunks int64) ([]Range, error) {
	if chunkSize <= 0 {
		return nil, errors.NewError("plan", errors.ErrInvalidInput).
			WithMessage("chunk size must be positive")
	}
	if totalSize < 0 {
		return nil, errors.NewError("plan", errors.ErrInvalidInput).
			WithMessage("total size must not be negative")
	}
	if totalSize == 0 {
		return nil, errors.NewError("plan", errors.ErrEmptyObject)
	}

	count := (totalSize + chunkSize - 1) / chunkSize
	if maxChunks > 0 && count > maxChunks {
		return nil, errors.NewError("plan", errors.ErrTooManyChunks).
			WithMessage(fmt.Sprintf("planned %d chunks, ceiling is %d", count, maxChunks))
	}

	ranges := make([]Range, 0, count)
	for i := int64(0); i < count; i++ {
		offset := i * chunkSize
		length := chunkSize
		if offset+length > totalSize {
			length = totalSize - offset
		}
		ranges = append(ranges, Range{
			Index:  int32(i),
			Offset: offset,
			Length: length,
		})
	}
	return ranges, nil
}
