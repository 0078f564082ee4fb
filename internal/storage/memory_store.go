package storage

import "maps"

// MemoryStore is a Backend held entirely in memory.
type MemoryStore struct {
	data map[string][]byte

	// beforeSet runs once at the start of the next Set and is then cleared.
	beforeSet func(key string)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	if s.beforeSet != nil {
		hook := s.beforeSet
		s.beforeSet = nil
		hook(key)
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *MemoryStore) Clear(keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Keys returns a snapshot of the stored keys and values.
func (s *MemoryStore) Keys() map[string][]byte {
	return maps.Clone(s.data)
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
