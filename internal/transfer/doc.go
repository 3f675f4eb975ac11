// Package transfer implements the chunked transfer engine.
//
// A transfer moves one object as a set of fixed-size chunks executed
// concurrently under a bounded worker budget. The engine is split into small
// pieces so each is independently testable:
//
//   - planner: computes chunk boundaries from object size and configuration
//   - gate: counting admission gate bounding concurrent workers
//   - retry: per-chunk retry policy with non-decreasing backoff
//   - aggregator: collects out-of-order chunk outcomes into an ordered result
//
// The Run function in this package is the dispatch loop tying them together.
// Upload and download orchestration live in internal/operations.
package transfer
