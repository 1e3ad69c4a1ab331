package storage

import "sync"

// MemoryStore keeps documents in memory. Nothing survives Close.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) Load() error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetDocument(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) PutDocument(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
