// Package shuttle moves large binary objects between local storage and S3 by
// splitting them into fixed-size chunks, transferring chunks concurrently
// under a bounded worker budget, retrying failed chunks with backoff, and
// verifying the result's size after reassembly.
//
// Basic usage:
//
//	client, err := shuttle.New(
//	    shuttle.WithRegion("eu-central-1"),
//	    shuttle.WithWorkerBudget(10),
//	)
//	if err != nil {
//	    return err
//	}
//
//	result, err := client.UploadFile(ctx, "bucket", "path/to/key", "/data/archive.bin")
//
// Single-shot helpers (Upload, Download, Get, List, Head) cover small objects
// and metadata; UploadFile and DownloadFile run through the chunked engine.
package shuttle
