package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps every key in a single JSON object on disk. Each write rewrites the
// file through a temporary file and a rename.
type JSONStore struct {
	path string
	data map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Init creates the file if it does not exist yet. An existing file is loaded, not replaced.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.data = map[string]json.RawMessage{}
	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse storage %s: %w", s.path, err)
	}
	s.data = data
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.data == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.data[key] = json.RawMessage(value)
	return s.save()
}

func (s *JSONStore) Clear(keys ...string) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
