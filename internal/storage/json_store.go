package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/fitlog/internal/errors"
)

// document is the on-disk shape of a JSON store file.
type document struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps every document in a single JSON file.
type JSONStore struct {
	path string

	mu    sync.Mutex
	store *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = &document{
		Version:   1,
		Documents: make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &document{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.store.Documents == nil {
		s.store.Documents = make(map[string]json.RawMessage)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetDocument(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, errors.ErrNotInitialized
	}
	value, ok := s.store.Documents[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// PutDocument stores value under key. Values that are not valid JSON are
// stored as a JSON string so the file stays parseable.
func (s *JSONStore) PutDocument(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return errors.ErrNotInitialized
	}

	raw := json.RawMessage(append([]byte(nil), value...))
	if !json.Valid(raw) {
		quoted, err := json.Marshal(string(value))
		if err != nil {
			return fmt.Errorf("failed to encode document %s: %w", key, err)
		}
		raw = quoted
	}
	s.store.Documents[key] = raw
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
