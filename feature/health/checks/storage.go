package checks

import (
	"context"
	"fmt"

	"fleetwash/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the evidence bucket.
type StorageReport struct {
	Bucket      string `json:"bucket"`
	Exists      bool   `json:"exists"`
	HasEvidence bool   `json:"has_evidence"`
}

// CheckStorage reports whether the bucket exists and holds any object under prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report := &StorageReport{Bucket: bucket, Exists: exists}
	if !exists {
		return report, nil
	}

	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true, MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		report.HasEvidence = true
		break
	}
	return report, nil
}

// FixStorage creates the bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string) error {
	return storage.EnsureBucket(ctx, client, bucket, region)
}
