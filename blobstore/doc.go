// Package blobstore opens the documents compared by the deepdist command.
//
// Store is the interface for reading named documents. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 (or any S3-compatible endpoint) via the
//     transfer manager's concurrent downloader
//
// Documents may be compressed. Open wraps a reader according to the name's
// extension: .zst (zstd), .gz (gzip) and .lz4 (lz4 frame).
package blobstore
