// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow Client interface covering the
// operations the bookmark manager needs: persisting cache snapshots and
// uploading exported bundles. Both AWS S3 and self-hosted MinIO are supported.
//
// The Client interface is mocked in core/storage/mocks for unit tests.
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket at startup.
//   - PutObject: uploads snapshots and exports.
//   - GetObject: reads a persisted snapshot back as a stream.
//   - RemoveObject: clears a persisted snapshot.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	if err := storage.EnsureBucket(ctx, client, config.Bucket, config.Region); err != nil {
//	    return err
//	}
package storage
