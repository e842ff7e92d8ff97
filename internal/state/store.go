// Package state holds the in-memory todo list of a session.
package state

import (
	"bytes"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
)

// Store is the ordered todo list plus the pending input buffer and the
// snapshot last written to storage. Every operation is total: invalid
// input is a no-op, reported through the bool result only.
//
// Store is safe for concurrent use; the autosave task reads it from its
// own goroutine.
type Store struct {
	mu       sync.RWMutex
	items    []model.Item
	input    string
	snapshot []byte
}

// New builds a store from previously persisted items. Empty and duplicate
// values are dropped, first occurrence wins.
func New(items []model.Item) *Store {
	s := &Store{items: make([]model.Item, 0, len(items))}
	for _, it := range items {
		if it.Value == "" || s.indexOf(it.Value) >= 0 {
			continue
		}
		s.items = append(s.items, it)
	}
	return s
}

// indexOf expects s.mu held. Values match on exact text.
func (s *Store) indexOf(value string) int {
	for i, it := range s.items {
		if it.Value == value {
			return i
		}
	}
	return -1
}

// Add appends {value, done:false}. It does nothing when value is empty or
// already present.
func (s *Store) Add(value string) bool {
	if value == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(value) >= 0 {
		return false
	}
	s.items = append(s.items, model.Item{Value: value})
	return true
}

// Remove deletes the item with the given value, if any.
func (s *Store) Remove(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(value)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// MarkDone flags the item as done. There is no way back.
func (s *Store) MarkDone(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(value)
	if i < 0 || s.items[i].Done {
		return false
	}
	s.items[i].Done = true
	return true
}

// SetInput replaces the pending input buffer.
func (s *Store) SetInput(text string) {
	s.mu.Lock()
	s.input = text
	s.mu.Unlock()
}

// Input returns the pending input buffer.
func (s *Store) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// Submit adds the pending input. The buffer is cleared only when the item
// was actually added, so a rejected duplicate stays editable.
func (s *Store) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.input
	if v == "" || s.indexOf(v) >= 0 {
		return false
	}
	s.items = append(s.items, model.Item{Value: v})
	s.input = ""
	return true
}

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats counts done and pending items.
func (s *Store) Stats() (done, pending int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// MarkSaved records the bytes that were last written to storage.
func (s *Store) MarkSaved(snapshot []byte) {
	b := append([]byte(nil), snapshot...)
	s.mu.Lock()
	s.snapshot = b
	s.mu.Unlock()
}

// Snapshot returns the last persisted form, nil if nothing was recorded.
func (s *Store) Snapshot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.snapshot...)
}

// Dirty reports whether the current list differs from the snapshot.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cur, err := model.Encode(s.items)
	if err != nil {
		return true
	}
	return !bytes.Equal(cur, s.snapshot)
}
