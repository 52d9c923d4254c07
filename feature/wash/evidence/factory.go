package evidence

import (
	"context"
	"fmt"

	"fleetwash/core/storage"
	"fleetwash/feature/wash"
)

// Backend names accepted in wash.Config.Evidence.
const (
	BackendObject     = "object"
	BackendFilesystem = "filesystem"
	BackendMemory     = "memory"
)

// New builds the configured photo store. The object backend creates its bucket when missing.
func New(ctx context.Context, cfg wash.Config, client storage.Client, storageCfg storage.Config) (wash.Evidence, error) {
	switch cfg.Evidence {
	case BackendObject:
		if client == nil {
			return nil, fmt.Errorf("object evidence store requires a storage client")
		}
		if err := storage.EnsureBucket(ctx, client, storageCfg.Bucket, storageCfg.Region); err != nil {
			return nil, err
		}
		return NewObjectStore(client, storageCfg.Bucket, cfg.EvidencePrefix), nil
	case BackendFilesystem, "":
		return NewFilesystemStore(cfg.EvidenceRoot, cfg.EvidencePrefix), nil
	case BackendMemory:
		return NewMemoryStore(cfg.EvidencePrefix), nil
	default:
		return nil, fmt.Errorf("unknown evidence backend: %s", cfg.Evidence)
	}
}
