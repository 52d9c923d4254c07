package wash

import "context"

// Store persists wash records. At most one record exists per (week, depot, unit id).
type Store interface {
	// Upsert atomically replaces any record with the same natural key by rec.
	// A uniqueness violation from a concurrent writer is returned as *StoreConflictError.
	Upsert(ctx context.Context, rec *Record) error
	// ListByWeek returns the week's records, newest first.
	ListByWeek(ctx context.Context, week string) ([]Record, error)
	// Get returns one record or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	// Delete removes one record. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
	// DeleteWeek removes every record of the week and returns how many were removed.
	DeleteWeek(ctx context.Context, week string) (int, error)
	// PhotoHashes returns the photo hash map of every stored record.
	PhotoHashes(ctx context.Context) ([]map[PhotoSlot]string, error)
}

// Evidence stores photo files.
type Evidence interface {
	// Save writes data under key and returns the stored location.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Remove deletes stored locations returned by Save.
	Remove(ctx context.Context, locations ...string) error
	// RemoveWeek deletes every photo of the week.
	RemoveWeek(ctx context.Context, week string) (int, error)
}
