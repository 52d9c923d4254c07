package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"fleetwash/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps photos in an S3 compatible bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates a photo store writing under prefix in bucket.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *ObjectStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	name := s.prefix + key
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return name, nil
}

func (s *ObjectStore) Remove(ctx context.Context, locations ...string) error {
	var errs []error
	for _, name := range locations {
		if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *ObjectStore) RemoveWeek(ctx context.Context, week string) (int, error) {
	return storage.RemovePrefix(ctx, s.client, s.bucket, s.prefix+week+"/")
}
