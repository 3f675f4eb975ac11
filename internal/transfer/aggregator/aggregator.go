// Package aggregator collects per-chunk outcomes into an ordered transfer result.
//
// Chunk workers complete in arbitrary order, governed by network latency. The
// collector stores outcomes in a slice keyed by chunk index so the final part
// list and assembled payload never depend on arrival order.
package aggregator

import (
	"github.com/blobkit/shuttle/errors"
)

// Outcome is the terminal result of one chunk worker.
type Outcome struct {
	// Index is the 0-based chunk index
	Index int32

	// ETag is the store-assigned part tag (uploads)
	ETag string

	// Bytes is the chunk payload (downloads)
	Bytes []byte

	// Attempts is how many transfer attempts were made
	Attempts int

	// Err is non-nil when the chunk exhausted its retry budget
	Err error
}

// Part is one entry of the ordered part list passed to multipart completion.
type Part struct {
	PartNumber int32
	ETag       string
}

// Collector gathers chunk outcomes keyed by index. It is driven from the
// orchestrator's single collection loop and is not safe for concurrent use.
type Collector struct {
	outcomes []Outcome
	received []bool
	count    int
	failure  *errors.ChunkError
}

// New creates a collector for a transfer of chunkCount chunks.
func New(chunkCount int) *Collector {
	return &Collector{
		outcomes: make([]Outcome, chunkCount),
		received: make([]bool, chunkCount),
	}
}

// Add records one chunk outcome. Outcomes of chunks that arrive after a
// failure has been recorded are kept but will be discarded with the transfer.
// The first failure wins; it is what the aggregate error reports.
func (c *Collector) Add(o Outcome) {
	if int(o.Index) < 0 || int(o.Index) >= len(c.outcomes) || c.received[o.Index] {
		return
	}
	c.outcomes[o.Index] = o
	c.received[o.Index] = true
	c.count++

	if o.Err != nil && c.failure == nil {
		c.failure = &errors.ChunkError{
			Index:    o.Index,
			Attempts: o.Attempts,
			Err:      o.Err,
		}
	}
}

// Failed reports whether any chunk has failed so far.
func (c *Collector) Failed() bool {
	return c.failure != nil
}

// Err returns the first chunk failure, or nil while none has been recorded.
func (c *Collector) Err() error {
	if c.failure == nil {
		return nil
	}
	return c.failure
}

// Complete reports whether every chunk has a successful outcome.
func (c *Collector) Complete() bool {
	return c.failure == nil && c.count == len(c.outcomes)
}

// Parts returns the part list in strictly ascending part-number order, as
// required by multipart completion. Call only after Complete returns true.
func (c *Collector) Parts() []Part {
	parts := make([]Part, len(c.outcomes))
	for i, o := range c.outcomes {
		parts[i] = Part{
			PartNumber: o.Index + 1,
			ETag:       o.ETag,
		}
	}
	return parts
}

// Assemble concatenates chunk payloads in offset order. Call only after
// Complete returns true.
func (c *Collector) Assemble() []byte {
	total := 0
	for _, o := range c.outcomes {
		total += len(o.Bytes)
	}
	buf := make([]byte, 0, total)
	for _, o := range c.outcomes {
		buf = append(buf, o.Bytes...)
	}
	return buf
}
