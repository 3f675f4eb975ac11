// Package internal contains private implementation details for the shuttle module.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - operations: upload, download, and list orchestration
//   - transfer: the chunked transfer engine (planner, gate, retry, aggregator)
//   - s3api: the interface seam to the AWS S3 client
//   - validation: input validation logic
//   - testutil: mocks and test helpers
package internal
