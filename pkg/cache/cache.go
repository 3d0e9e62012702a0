package cache

import (
	"sync"
	"time"
)

// entry is a stored value together with its expiry bookkeeping.
type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// expired reports whether the entry is past its TTL at the given time.
func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Stats holds counters describing cache effectiveness.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// Store is an in-memory key/value store with per-entry TTL. Expired
// entries are evicted lazily when a lookup finds them; there is no
// background sweep. The store is unbounded, which is acceptable for the
// dozens-to-hundreds of keys this pipeline tracks.
type Store[V any] struct {
	mu        sync.Mutex
	entries   map[string]entry[V]
	hits      int64
	misses    int64
	evictions int64
}

// New creates an empty Store
func New[V any]() *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
	}
}

// Get returns the value stored under key if it is present and unexpired.
// An expired entry is removed as a side effect of the failed lookup.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		s.misses++
		var zero V
		return zero, false
	}

	if ent.expired(time.Now()) {
		delete(s.entries, key)
		s.evictions++
		s.misses++
		var zero V
		return zero, false
	}

	s.hits++
	return ent.value, true
}

// Set stores value under key with the given TTL, unconditionally
// overwriting any existing entry and resetting its stored-at timestamp.
func (s *Store[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[V]{
		value:    value,
		storedAt: time.Now(),
		ttl:      ttl,
	}
}

// Delete removes the entry for key if present; absent keys are a no-op
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Clear drops all entries
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry[V])
}

// Len returns the number of stored entries, including any that have
// expired but not yet been evicted by a lookup
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Stats returns a snapshot of the cache counters
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Entries:   len(s.entries),
	}
}
