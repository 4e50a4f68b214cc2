// Package leaderboard is the in-memory, non-persistent stand-in for score
// persistence. Entries are ranked descending by score and capped; nothing
// survives process restart.
package leaderboard

import (
	"sort"
	"sync"
)

// MaxEntries caps the number of retained scores.
const MaxEntries = 50

// Entry is a single leaderboard record.
type Entry struct {
	Name  string
	Score int
}

// Store holds ranked scores shared across sessions. Safe for concurrent
// use; every SSH session submits and reads through the same store.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates an empty leaderboard.
func NewStore() *Store {
	return &Store{}
}

// Submit records a score. Insertion is stable, so equal scores rank by
// submission order. Entries beyond the cap are dropped.
func (s *Store) Submit(name string, score int) {
	if score < 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{Name: name, Score: score})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
}

// Top returns a copy of the highest n entries.
func (s *Store) Top(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
