package store

import (
	"sync"
	"time"

	"logsviewer/internal/activity/models"
)

// InMemoryStore holds the current record set. The set is only ever replaced
// as a whole; callers must treat the slice returned by All as read-only.
type InMemoryStore struct {
	mu       sync.RWMutex
	records  []models.LogRecord
	source   string
	loadedAt time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Replace swaps in a freshly ingested record set, discarding the previous one.
func (s *InMemoryStore) Replace(records []models.LogRecord, source string, loadedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.source = source
	s.loadedAt = loadedAt
}

// All returns the current record set.
func (s *InMemoryStore) All() []models.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot describes the loaded set.
type Snapshot struct {
	Records  int
	Source   string
	LoadedAt time.Time
}

func (s *InMemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Records: len(s.records), Source: s.source, LoadedAt: s.loadedAt}
}

// Clear drops the record set.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.source = ""
	s.loadedAt = time.Time{}
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
func DuplicateIDs(records []models.LogRecord) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}
