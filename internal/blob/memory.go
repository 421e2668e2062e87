package blob

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory blob store for tests. Setting Err makes
// every Put fail, which is how upload-failure paths are exercised.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Err, when non-nil, is returned by every Put
	Err error
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory blob store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
	}
}

// Put stores data under path and returns a mem:// URL
func (s *MemoryStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return "", s.Err
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[path] = buf

	return "mem://" + path, nil
}

// Get returns the stored object and whether it exists
func (s *MemoryStore) Get(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	return data, ok
}

// Len returns the number of stored objects
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
