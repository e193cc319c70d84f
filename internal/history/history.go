package history

import (
	"encoding/json"
	"log"
	"slices"
	"strings"
)

const (
	// StorageKey is the single key the history occupies in durable storage.
	StorageKey = "searchHistory"

	DefaultCapacity = 10
)

// Storage is string key-value storage that survives restarts.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store is the bounded, most-recent-first list of committed queries.
// It owns its storage key exclusively. Storage failures never reach the
// caller: reads fall back to an empty list and writes are logged and
// dropped, leaving the in-memory list authoritative.
type Store struct {
	storage  Storage
	capacity int
	entries  []string
}

// NewStore returns an empty store. A nil storage keeps history in memory
// only.
func NewStore(storage Storage, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{storage: storage, capacity: capacity}
}

// Load replaces the in-memory list with the persisted one.
func (s *Store) Load() {
	s.entries = nil
	if s.storage == nil {
		return
	}

	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		log.Printf("history: read failed, starting empty: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Printf("history: corrupt %s value, starting empty: %v", StorageKey, err)
		return
	}

	for _, q := range stored {
		q = strings.TrimSpace(q)
		if q == "" || slices.Contains(s.entries, q) {
			continue
		}
		s.entries = append(s.entries, q)
		if len(s.entries) == s.capacity {
			break
		}
	}
}

// Record moves query to the front of the list, dropping any earlier copy
// and anything past capacity, then persists the list.
func (s *Store) Record(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if len(s.entries) > 0 && s.entries[0] == query {
		return
	}

	entries := make([]string, 0, s.capacity)
	entries = append(entries, query)
	for _, q := range s.entries {
		if q != query && len(entries) < s.capacity {
			entries = append(entries, q)
		}
	}
	s.entries = entries
	s.persist()
}

// Clear empties the list and persists the empty state.
func (s *Store) Clear() {
	s.entries = nil
	s.persist()
}

// Entries returns a copy of the list, most recent first.
func (s *Store) Entries() []string {
	return slices.Clone(s.entries)
}

// Recent returns at most n of the most recent entries.
func (s *Store) Recent(n int) []string {
	if n > len(s.entries) {
		n = len(s.entries)
	}
	if n <= 0 {
		return nil
	}
	return slices.Clone(s.entries[:n])
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}

	entries := s.entries
	if entries == nil {
		entries = []string{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("history: encode failed: %v", err)
		return
	}
	if err := s.storage.Set(StorageKey, string(data)); err != nil {
		log.Printf("history: write failed, keeping in-memory list: %v", err)
	}
}
