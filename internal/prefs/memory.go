package prefs

import "sync"

// MemoryStore keeps settings in process memory and notifies synchronously
// on the goroutine that calls Set.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]bool
	hub    hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]bool)}
}

func (s *MemoryStore) Bool(key string, fallback bool) Bool {
	return &boolPref{key: key, fallback: fallback, b: s}
}

func (s *MemoryStore) load(key string, fallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return fallback
}

func (s *MemoryStore) save(key string, v bool) {
	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()
	s.hub.publish(key, v)
}

func (s *MemoryStore) observers() *hub { return &s.hub }

// Observers reports how many observers are subscribed to key.
func (s *MemoryStore) Observers(key string) int {
	return s.hub.count(key)
}
