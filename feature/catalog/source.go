package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"fleetwash/core/storage"

	"github.com/minio/minio-go/v7"
)

const objectScheme = "s3://"

// Source is one ordered unit list.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Open returns the raw JSON array of unit descriptors.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a unit list from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

// ObjectSource reads a unit list from the storage bucket.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Key    string
}

func (s ObjectSource) Name() string { return objectScheme + s.Key }

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
}

// ParseSources converts configured locations into sources.
// client may be nil when no location uses the s3:// scheme.
func ParseSources(locations []string, client storage.Client, bucket string) ([]Source, error) {
	sources := make([]Source, 0, len(locations))
	for _, loc := range locations {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		if key, ok := strings.CutPrefix(loc, objectScheme); ok {
			if client == nil {
				return nil, fmt.Errorf("catalog source %s requires object storage", loc)
			}
			sources = append(sources, ObjectSource{Client: client, Bucket: bucket, Key: key})
			continue
		}
		sources = append(sources, FileSource{Path: loc})
	}
	return sources, nil
}
