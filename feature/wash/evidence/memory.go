package evidence

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps photos in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	prefix string
	files  map[string][]byte
}

// NewMemoryStore creates an empty photo store.
func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{prefix: prefix, files: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.prefix + key
	s.files[name] = append([]byte(nil), data...)
	return name, nil
}

func (s *MemoryStore) Remove(ctx context.Context, locations ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range locations {
		delete(s.files, name)
	}
	return nil
}

func (s *MemoryStore) RemoveWeek(ctx context.Context, week string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := s.prefix + week + "/"
	n := 0
	for name := range s.files {
		if strings.HasPrefix(name, prefix) {
			delete(s.files, name)
			n++
		}
	}
	return n, nil
}

// Files returns the stored names.
func (s *MemoryStore) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names
}

// Get returns a stored photo.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	return data, ok
}
