// Package operations contains the S3 operation orchestrators.
//
// Each operation is isolated into its own subpackage: upload and download own
// the chunked transfer state machines (plan, dispatch, aggregate, finalize,
// verify), list owns paginated key listing.
package operations
