// Package snapshot holds the published intelligence snapshot.
//
// A snapshot is replaced wholesale at the end of each sync cycle; readers see
// either the previous complete snapshot or the new complete one, never a
// partially assembled buffer.
package snapshot

import (
	"sync"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

// Store is the process-wide snapshot holder. The sync engine is the only
// writer; Current may be called from any goroutine.
type Store struct {
	mu    sync.RWMutex
	items []intel.Item
}

// New creates an empty Store. Current returns an empty slice until the first
// cycle publishes.
func New() *Store {
	return &Store{}
}

// Current returns a copy of the last published snapshot.
func (s *Store) Current() []intel.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]intel.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Replace publishes a fully assembled snapshot in one atomic swap.
func (s *Store) Replace(items []intel.Item) {
	buf := make([]intel.Item, len(items))
	copy(buf, items)
	s.mu.Lock()
	s.items = buf
	s.mu.Unlock()
}

// Len reports the size of the published snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
