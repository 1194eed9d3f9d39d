package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/Vinicius-Leon/leons-cupcake/pkg/errors"
)

const storageFile = "storage.json"

// FileStore persists keys as a single JSON document in a data directory. It
// is the default backend: one file per device, created lazily on first write.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created if it does not exist; the data file itself is created on first Set.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, storageFile)}, nil
}

// Get returns the value stored under key, or ErrNotFound when the key (or
// the whole data file) is absent.
func (s *FileStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}

	v, ok := data[key]
	if !ok {
		return nil, apperrors.NotFound("storage key", key)
	}
	return []byte(v), nil
}

// Set writes value under key, rewriting the whole data file atomically.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	data[key] = string(value)
	return s.flush(data)
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.flush(data)
}

// load reads the data file into a map. A missing file yields an empty map; a
// corrupted file is treated the same way so a bad write can never brick the
// client.
func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]string{}, nil
	}
	return data, nil
}

// flush writes the map to a temp file and renames it over the data file so a
// crash mid-write leaves the previous contents intact.
func (s *FileStore) flush(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
