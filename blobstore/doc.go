// Package blobstore stores recorded runs as named, immutable blobs.
//
// BlobStore is the interface for reading and writing whole blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and short-lived sessions
//   - LocalStore: local filesystem with atomic writes
//   - minio.Store: MinIO and S3-compatible storage
//   - s3.Store: Amazon S3 with managed uploads
//
// Names use forward slashes on every backend, so a trace listed from one
// store can be copied into another unchanged.
package blobstore
