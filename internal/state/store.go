package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/slotboard/internal/grid"
)

// Notice is a one-line outcome message shown to the user.
type Notice struct {
	Text    string
	IsError bool
	At      time.Time
}

// Expired reports whether the notice is older than ttl.
func (n Notice) Expired(now time.Time, ttl time.Duration) bool {
	return n.Text == "" || now.Sub(n.At) >= ttl
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Grid        grid.Grid
	HasGrid     bool
	EntryCount  int
	Base        string // resolved base, empty when unresolved
	Notice      Notice
	Busy        bool
	Action      string // action in flight while Busy
	LastError   error
	LastUpdated time.Time
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// TryBegin marks action as running. It returns false when another action is
// already in flight, so user-triggered work is serialized.
func (s *Store) TryBegin(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Busy {
		return false
	}
	s.snapshot.Busy = true
	s.snapshot.Action = action
	s.snapshot.LastUpdated = time.Now()
	return true
}

// End clears the busy flag.
func (s *Store) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Busy = false
	s.snapshot.Action = ""
	s.snapshot.LastUpdated = time.Now()
}

// Notify records a notice. Error notices also become LastError.
func (s *Store) Notify(text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.snapshot.Notice = Notice{Text: text, IsError: err != nil, At: now}
	if err != nil {
		s.snapshot.LastError = err
	} else {
		s.snapshot.LastError = nil
	}
	s.snapshot.LastUpdated = now
}

// SetBase records the resolved base; empty clears it.
func (s *Store) SetBase(base string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Base = base
	s.snapshot.LastUpdated = time.Now()
}

// SetGrid replaces the rendered grid.
func (s *Store) SetGrid(g grid.Grid, entries int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Grid = cloneGrid(g)
	s.snapshot.HasGrid = true
	s.snapshot.EntryCount = entries
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Grid = cloneGrid(s.snapshot.Grid)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneGrid(g grid.Grid) grid.Grid {
	dup := grid.Grid{
		Days:     append([]string(nil), g.Days...),
		Slots:    append([]string(nil), g.Slots...),
		Unplaced: g.Unplaced,
	}
	if g.Rows == nil {
		return dup
	}
	dup.Rows = make([][]grid.Cell, len(g.Rows))
	for r, row := range g.Rows {
		dup.Rows[r] = make([]grid.Cell, len(row))
		for c, cell := range row {
			cell.Entries = append([]grid.Entry(nil), cell.Entries...)
			dup.Rows[r][c] = cell
		}
	}
	return dup
}
