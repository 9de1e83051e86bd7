package catalog

import (
	"sync/atomic"
)

// Store holds the current catalog. Readers get a consistent snapshot; an
// update replaces the whole catalog in one atomic swap.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store seeded with the given catalog (Empty() if nil)
func NewStore(initial *Catalog) *Store {
	if initial == nil {
		initial = Empty()
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Load returns the current catalog
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Swap installs next and returns the catalog it replaced
func (s *Store) Swap(next *Catalog) *Catalog {
	return s.current.Swap(next)
}

// ReplaceIfNewer installs next only when its version is later than the
// current one. It reports whether the swap happened.
func (s *Store) ReplaceIfNewer(next *Catalog) bool {
	for {
		cur := s.current.Load()
		if !next.IsNewerThan(cur) {
			return false
		}
		if s.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}
