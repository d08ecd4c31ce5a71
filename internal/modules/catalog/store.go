package catalog

import "sync/atomic"

// Store holds the catalog currently in use.
// Readers always see a complete catalog; Replace swaps it atomically.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store serving c
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Current returns the catalog in use
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace swaps in a new catalog and returns the previous one
func (s *Store) Replace(c *Catalog) *Catalog {
	return s.current.Swap(c)
}
