// Package grid implements a sparse square-lattice game board: hash-keyed
// cell storage, neighbor enumeration, distance, procedural generation,
// and snapshot serialization. Rendering and pathfinding are consumers of
// this package; they read cell data out of a Grid and never mutate its
// indexing invariants.
package grid

import "github.com/gravitas-games/gridboard/square"

// Cell is a single addressable unit of the board. Identity is the (Q, R)
// pair alone; S and H are carried data, not identity. The owning Grid
// controls a cell's lifetime: holders of a *Cell must not assume it is
// still live after removal.
type Cell struct {
	Q int `json:"q"`
	R int `json:"r"`
	// S is the derived third component, kept for parity with the hex
	// cell types. Never consulted by hashing or distance.
	S int `json:"s"`
	// H is the vertical offset in world units. Contributes the additive
	// term to Grid.Distance and the y component of world positions.
	H float64 `json:"h"`
	// Walkable is consumed by pathfinding; the board itself does not
	// enforce it.
	Walkable bool `json:"walkable"`
	// UserData holds caller-defined attributes, preserved verbatim
	// through serialization.
	UserData map[string]any `json:"userData,omitempty"`
}

// NewCell returns a walkable cell at (q, r) with default height.
func NewCell(q, r int) *Cell {
	return &Cell{Q: q, R: r, S: -q - r, Walkable: true}
}

// Coord returns the cell's lattice coordinate.
func (c *Cell) Coord() square.Coord { return square.Coord{Q: c.Q, R: c.R} }

// Key returns the cell's canonical storage key.
func (c *Cell) Key() square.Key { return c.Coord().Key() }
