// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so AWS S3 and self-hosted
// MinIO are interchangeable, and so tests can use the testify mock in core/storage/mocks.
//
// # Operations
//
//   - EnsureBucket: creates the target bucket on first use.
//   - RemovePrefix: lists and batch deletes every object under a prefix (week evidence cleanup).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
