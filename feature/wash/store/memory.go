package store

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"fleetwash/feature/wash"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]wash.Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]wash.Record)}
}

func (s *MemoryStore) Upsert(ctx context.Context, rec *wash.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.records {
		if sameKey(r, *rec) {
			delete(s.records, id)
		}
	}
	s.records[rec.ID] = cloneRecord(*rec)
	return nil
}

func (s *MemoryStore) ListByWeek(ctx context.Context, week string) ([]wash.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []wash.Record{}
	for _, r := range s.records {
		if r.Week == week {
			out = append(out, cloneRecord(r))
		}
	}
	wash.SortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*wash.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, wash.ErrNotFound)
	}
	r = cloneRecord(r)
	return &r, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) DeleteWeek(ctx context.Context, week string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, r := range s.records {
		if r.Week == week {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) PhotoHashes(ctx context.Context) ([]map[wash.PhotoSlot]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[wash.PhotoSlot]string, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, maps.Clone(r.PhotoHashes))
	}
	return out, nil
}

func sameKey(a, b wash.Record) bool {
	return a.Week == b.Week && a.Depot == b.Depot && a.UnitID == b.UnitID
}

func cloneRecord(r wash.Record) wash.Record {
	r.Photos = maps.Clone(r.Photos)
	r.PhotoHashes = maps.Clone(r.PhotoHashes)
	return r
}
