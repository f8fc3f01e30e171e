package grid

import "github.com/gravitas-games/gridboard/square"

// Store is the sparse cell container, keyed by canonical coordinate key.
// It keeps its own count, updated only by Add and Remove; Count never
// rescans the map.
//
// Store provides no concurrency guarantees. Mutating it while a ForEach
// or neighbor enumeration is in flight is a precondition violation;
// callers needing concurrent access must serialize externally.
type Store struct {
	cells map[square.Key]*Cell
	count int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cells: make(map[square.Key]*Cell)}
}

// Add stores the cell under its coordinate key. If the key is already
// occupied the call is a no-op and returns false: duplicate placement is
// ignored rather than overwriting, so repeated inserts are harmless.
func (s *Store) Add(c *Cell) bool {
	k := c.Key()
	if _, occupied := s.cells[k]; occupied {
		return false
	}
	s.cells[k] = c
	s.count++
	return true
}

// Remove deletes the cell at c's coordinate if present. Removing an
// absent cell is a no-op.
func (s *Store) Remove(c *Cell) {
	k := c.Key()
	if _, ok := s.cells[k]; !ok {
		return
	}
	delete(s.cells, k)
	s.count--
}

// Get looks up a cell by key. A miss is routine on a sparse board and is
// reported as (nil, false), not an error.
func (s *Store) Get(k square.Key) (*Cell, bool) {
	c, ok := s.cells[k]
	return c, ok
}

// ForEach visits every live cell exactly once. Order is unspecified.
func (s *Store) ForEach(visit func(*Cell)) {
	for _, c := range s.cells {
		visit(c)
	}
}

// Count returns the cached number of live cells.
func (s *Store) Count() int { return s.count }
