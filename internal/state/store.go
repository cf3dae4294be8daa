package state

import (
	"fmt"
	"sync"
	"time"
)

// FireResult is the outcome of one generation request.
type FireResult struct {
	RunID    string
	Source   string // "scheduled" or "manual"
	At       time.Time
	Duration time.Duration
	Message  string
	BlogID   string
	Err      error
}

// OK reports whether the request succeeded.
func (r FireResult) OK() bool {
	return r.Err == nil
}

// Snapshot is the generation activity visible to the UI.
type Snapshot struct {
	Fires    int // successful runs
	Failures int
	Last     FireResult
	HasLast  bool
}

// LastFailed reports whether the most recent run failed.
func (s Snapshot) LastFailed() bool {
	return s.HasLast && s.Last.Err != nil
}

// Store coordinates concurrent writes from fire goroutines with UI reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// RecordFire stores the outcome of a run. Runs may finish out of order when
// requests overlap; the last one recorded wins.
func (s *Store) RecordFire(result FireResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result.Err != nil {
		s.snapshot.Failures++
	} else {
		s.snapshot.Fires++
	}
	s.snapshot.Last = result
	s.snapshot.HasLast = true
}

// Snapshot returns a copy of the current activity.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Last.Err != nil {
		snap.Last.Err = fmt.Errorf("%w", s.snapshot.Last.Err)
	}
	return snap
}
