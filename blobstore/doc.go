// Package blobstore provides storage for record snapshots.
//
// BlobStore is the read side used by loaders; WritableStore adds Put and
// Delete for tools that publish snapshots. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with mmap support
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible servers
//
// Loaders read whole blobs through ReadAll, which uses the zero-copy Bytes
// path for Mappable blobs and falls back to ReadAt otherwise.
package blobstore
