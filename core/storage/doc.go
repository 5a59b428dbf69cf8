// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and is used to archive the messages a sync run
// is about to delete, so a purge can be inspected or restored by hand. Both
// AWS S3 and self-hosted MinIO instances are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed (see EnsureBucket).
//   - PutObject: Uploads content (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "embed-sync", "")
package storage
