package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

// Snapshot is the latest page known for one resource.
type Snapshot struct {
	Resource            string
	Rows                []tablestate.Map
	Total               int
	HasData             bool
	Seq                 uint64
	Loading             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

type entry struct {
	snap    Snapshot
	pending uint64
}

// Store coordinates concurrent fetches and the UI. Each fetch takes a sequence
// number from Begin; Update only applies results for the newest sequence
// started for that resource, so a slow early response cannot overwrite a
// later one.
type Store struct {
	mu      sync.RWMutex
	seq     uint64
	entries map[string]*entry
	focus   Focus
}

// Focus is the resource and query the UI is currently showing, published for
// the background poller.
type Focus struct {
	Resource string
	Query    tablestate.ListQuery
}

// SetFocus records what the UI is showing.
func (s *Store) SetFocus(resource string, q tablestate.ListQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = Focus{Resource: resource, Query: q}
}

// Focus returns the last published focus; ok is false before any SetFocus.
func (s *Store) Focus() (Focus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focus, s.focus.Resource != ""
}

func (s *Store) entry(resource string) *entry {
	if s.entries == nil {
		s.entries = make(map[string]*entry)
	}
	e, ok := s.entries[resource]
	if !ok {
		e = &entry{snap: Snapshot{Resource: resource}}
		s.entries[resource] = e
	}
	return e
}

// Begin registers a fetch for resource and returns its sequence number.
func (s *Store) Begin(resource string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e := s.entry(resource)
	e.pending = s.seq
	e.snap.Loading = true
	return s.seq
}

// Update records the outcome of fetch seq. It returns false, changing nothing,
// when a newer fetch has begun since. When err is non-nil the previous rows
// are kept and the error is recorded.
func (s *Store) Update(resource string, seq uint64, page source.Page, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(resource)
	if seq < e.pending {
		return false
	}
	e.snap.Loading = false
	e.snap.Seq = seq
	e.snap.LastUpdated = time.Now()

	if err != nil {
		e.snap.LastError = err
		e.snap.ConsecutiveFailures++
		return true
	}
	e.snap.Rows = cloneRows(page.Rows)
	e.snap.Total = page.Total
	e.snap.HasData = true
	e.snap.LastError = nil
	e.snap.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot for resource.
func (s *Store) Snapshot(resource string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[resource]
	if !ok {
		return Snapshot{Resource: resource}
	}
	snap := e.snap
	snap.Rows = cloneRows(e.snap.Rows)
	if e.snap.LastError != nil {
		snap.LastError = fmt.Errorf("%w", e.snap.LastError)
	}
	return snap
}

// Forget drops everything known about resource.
func (s *Store) Forget(resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, resource)
}

func cloneRows(rows []tablestate.Map) []tablestate.Map {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]tablestate.Map, len(rows))
	copy(dup, rows)
	return dup
}
