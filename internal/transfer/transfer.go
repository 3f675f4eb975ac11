package transfer

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bitrise-io/go-utils/v2/log"

	"github.com/blobkit/shuttle/internal/transfer/aggregator"
	"github.com/blobkit/shuttle/internal/transfer/gate"
	"github.com/blobkit/shuttle/internal/transfer/planner"
	"github.com/blobkit/shuttle/internal/transfer/retry"
)

// ChunkFunc performs a single transfer attempt for one chunk. Uploads return
// the store-assigned part tag; downloads return the chunk payload. Each
// invocation makes exactly one network call.
type ChunkFunc func(ctx context.Context, r planner.Range) (etag string, body []byte, err error)

// Options tunes one dispatch run.
type Options struct {
	// WorkerBudget bounds concurrent chunk workers
	WorkerBudget int

	// Retry is the per-chunk retry policy
	Retry retry.Policy

	// Logger receives debug output; must not be nil
	Logger log.Logger
}

// Run dispatches one worker per range through a shared admission gate, feeds
// outcomes into a collector as workers complete, and returns the collector.
//
// Dispatch is index-ascending; completion order is unconstrained. After the
// first chunk failure no further chunks are admitted, but in-flight workers
// are left to drain and their results are discarded with the transfer. The
// returned error is the first chunk failure, or the context error if
// dispatch was interrupted; on a nil error the collector is complete.
func Run(ctx context.Context, ranges []planner.Range, opts Options, fn ChunkFunc) (*aggregator.Collector, error) {
	collector := aggregator.New(len(ranges))
	outcomes := make(chan aggregator.Outcome, len(ranges))
	g := gate.New(opts.WorkerBudget)

	var wg sync.WaitGroup
	var failed atomic.Bool
	var dispatchErr error

	for _, r := range ranges {
		if failed.Load() {
			break
		}
		if err := g.Acquire(ctx); err != nil {
			dispatchErr = err
			break
		}
		// A failure may have been recorded while we were waiting for a permit.
		if failed.Load() {
			g.Release()
			break
		}

		wg.Add(1)
		go func(r planner.Range) {
			defer wg.Done()
			defer g.Release()

			var etag string
			var body []byte
			attempts, err := retry.Do(ctx, opts.Retry, func(ctx context.Context) error {
				var attemptErr error
				etag, body, attemptErr = fn(ctx, r)
				return attemptErr
			})
			if err != nil {
				failed.Store(true)
				opts.Logger.Debugf("chunk %d failed after %d attempts: %s", r.Index, attempts, err)
			}
			outcomes <- aggregator.Outcome{
				Index:    r.Index,
				ETag:     etag,
				Bytes:    body,
				Attempts: attempts,
				Err:      err,
			}
		}(r)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for o := range outcomes {
		collector.Add(o)
	}

	if err := collector.Err(); err != nil {
		return collector, err
	}
	if dispatchErr != nil {
		return collector, dispatchErr
	}
	return collector, nil
}
