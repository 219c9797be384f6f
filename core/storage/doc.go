// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the artwork mirror and integrity report need. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the artwork bucket.
//   - MakeBucket: Creates the bucket on first use.
//   - PutObject: Uploads mirrored artwork.
//   - GetObject: Retrieves artwork as a stream.
//   - ListObjects: Lists mirrored artwork (supports prefix/recursive).
//   - RemoveObject: Deletes stale artwork.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "artwork")
package storage
