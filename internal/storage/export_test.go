package storage

// interleaveNextSet runs fn at the start of the next Set on s.
func (s *MemoryStore) interleaveNextSet(fn func(key string)) {
	s.beforeSet = fn
}
