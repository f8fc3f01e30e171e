// Package path provides pathfinding primitives over a gridboard grid:
// A* search, a per-search scratch side table, and a step-wise walker.
// The board itself stays free of search state; each search owns its own
// Scratch, so concurrent searches over one grid never interfere.
package path

import "github.com/gravitas-games/gridboard/square"

// Node holds the transient search state for one cell, valid for the
// duration of a single search.
type Node struct {
	// Cost is the best known travel cost from the start.
	Cost float64
	// Priority is the queue ordering value (cost + heuristic).
	Priority float64
	// Parent is the key of the preceding cell on the best known route.
	// A key reference rather than a cell pointer: removing cells
	// mid-search cannot leave dangling state.
	Parent    square.Key
	HasParent bool
	// Visited marks cells whose best route is final.
	Visited bool
}

// Scratch is the side table of per-cell search state, keyed by canonical
// cell key. It replaces scratch fields on the stored cells themselves.
type Scratch struct {
	nodes map[square.Key]*Node
}

// NewScratch returns an empty side table.
func NewScratch() *Scratch {
	return &Scratch{nodes: make(map[square.Key]*Node)}
}

// Node returns the state for k, creating a zeroed entry on first access.
func (s *Scratch) Node(k square.Key) *Node {
	n, ok := s.nodes[k]
	if !ok {
		n = &Node{}
		s.nodes[k] = n
	}
	return n
}

// Lookup returns the state for k without creating it.
func (s *Scratch) Lookup(k square.Key) (*Node, bool) {
	n, ok := s.nodes[k]
	return n, ok
}

// Len returns the number of cells touched by the search so far.
func (s *Scratch) Len() int { return len(s.nodes) }

// Reset discards all search state. Must be called (or a fresh Scratch
// used) between searches; nothing resets implicitly.
func (s *Scratch) Reset() {
	s.nodes = make(map[square.Key]*Node)
}
