package history

import (
	"sync"

	"github.com/charcoaldev/charcoal/internal/document"
)

// DefaultCapacity bounds the stack when no explicit capacity is given.
const DefaultCapacity = 100

// Stack is a bounded, branch-discarding history of document snapshots.
//
// It keeps one slice of entries and a cursor index pointing at the entry
// that matches the current document state. Undo moves the cursor back,
// redo moves it forward, and a push while the cursor is not at the end
// discards everything after it (the redo branch).
type Stack struct {
	mu      sync.Mutex
	entries []document.Snapshot
	cursor  int // index of the current entry; -1 means "before start"
	cap     int
}

// New creates a history stack holding at most capacity snapshots.
// Non-positive capacities fall back to DefaultCapacity.
func New(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{cursor: -1, cap: capacity}
}

// Push records a new snapshot as the current state.
//
// Any entries beyond the cursor (the redo branch) are discarded first. If
// the stack then exceeds its capacity, the oldest entry is evicted and the
// cursor shifts down with it.
func (s *Stack) Push(snap document.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop the redo branch.
	s.entries = s.entries[:s.cursor+1]

	s.entries = append(s.entries, snap.Clone())
	s.cursor++

	if len(s.entries) > s.cap {
		excess := len(s.entries) - s.cap
		s.entries = s.entries[excess:]
		s.cursor -= excess
	}
}

// Undo steps the cursor back one entry and returns a defensive copy of the
// snapshot there. At the start boundary it is a silent no-op: it returns
// ok=false and leaves the cursor unchanged.
func (s *Stack) Undo() (document.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor <= 0 {
		return document.Snapshot{}, false
	}
	s.cursor--
	return s.entries[s.cursor].Clone(), true
}

// Redo steps the cursor forward one entry and returns a defensive copy of
// the snapshot there. At the end boundary it is a silent no-op.
func (s *Stack) Redo() (document.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.entries)-1 {
		return document.Snapshot{}, false
	}
	s.cursor++
	return s.entries[s.cursor].Clone(), true
}

// CanUndo reports whether an undo step is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo reports whether a redo step is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Capacity returns the maximum number of stored snapshots.
func (s *Stack) Capacity() int { return s.cap }

// Clear empties the stack and resets the cursor to before the start.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.cursor = -1
}
