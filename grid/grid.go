package grid

import (
	"encoding/json"
	"math/rand"

	"github.com/gravitas-games/gridboard/square"
)

// DefaultCellSize is the half-width used when New is given a
// non-positive size.
const DefaultCellSize = 10.0

// Grid is the public board object: it owns a Store of cells plus the
// world-space sizing used for coordinate conversion. Each Grid carries
// its own configuration; independent grids never share state.
//
// Grid is single-writer by design. All operations are synchronous and
// none of them lock; if multiple goroutines mutate one grid, the caller
// must serialize access externally.
type Grid struct {
	cellSize     float64
	fullCellSize float64

	store         *Store
	size          int
	autogenerated bool

	// extrude is an opaque blob consumed only by the rendering
	// collaborator; carried through snapshots untouched.
	extrude json.RawMessage
}

// GenConfig controls procedural generation.
type GenConfig struct {
	// Size is the side length of the generated square region.
	Size int
	// Height assigns per-cell heights. Nil leaves every cell at height
	// zero.
	Height HeightFunc
}

// New returns an empty grid with the given cell half-width.
func New(cellSize float64) *Grid {
	g := &Grid{store: NewStore()}
	g.SetCellSize(cellSize)
	return g
}

// SetCellSize updates the cell half-width and re-derives the full width
// used by every coordinate conversion.
func (g *Grid) SetCellSize(cellSize float64) {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	g.cellSize = cellSize
	g.fullCellSize = 2 * cellSize
}

// CellSize returns the cell half-width in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Size returns the generation side length. Meaningful only when the
// grid was generated rather than loaded or hand-built.
func (g *Grid) Size() int { return g.size }

// Autogenerated reports whether the current contents came from Generate.
func (g *Grid) Autogenerated() bool { return g.autogenerated }

// ExtrudeSettings returns the opaque rendering blob, if any.
func (g *Grid) ExtrudeSettings() json.RawMessage { return g.extrude }

// SetExtrudeSettings stores the opaque rendering blob carried through
// snapshots.
func (g *Grid) SetExtrudeSettings(raw json.RawMessage) { g.extrude = raw }

// Generate replaces the grid contents with a freshly built size x size
// region centered near the origin (see square.Block for the exact
// bounds). Every cell starts walkable; heights come from cfg.Height
// when set.
func (g *Grid) Generate(cfg GenConfig) {
	g.store = NewStore()
	g.size = cfg.Size
	g.autogenerated = true
	for _, coord := range square.Block(cfg.Size) {
		cell := NewCell(coord.Q, coord.R)
		if cfg.Height != nil {
			cell.H = cfg.Height(coord)
		}
		g.store.Add(cell)
	}
}

// Add inserts a cell, ignoring duplicates. Reports whether the cell was
// stored.
func (g *Grid) Add(c *Cell) bool { return g.store.Add(c) }

// Remove deletes a cell by coordinate; absent cells are a no-op.
func (g *Grid) Remove(c *Cell) { g.store.Remove(c) }

// CellAt returns the cell at the given lattice coordinate.
func (g *Grid) CellAt(coord square.Coord) (*Cell, bool) {
	return g.store.Get(coord.Key())
}

// CellAtWorld returns the cell containing the world-space position.
func (g *Grid) CellAtWorld(x, z float64) (*Cell, bool) {
	return g.CellAt(g.WorldToCell(x, z))
}

// WorldToCell converts a world-space position to its cell coordinate.
func (g *Grid) WorldToCell(x, z float64) square.Coord {
	return square.FromWorld(x, z, g.fullCellSize)
}

// CellToWorld returns the world-space center of a cell; y is the cell's
// height.
func (g *Grid) CellToWorld(c *Cell) (x, y, z float64) {
	x, z = square.ToWorld(c.Coord(), g.fullCellSize)
	return x, c.H, z
}

// ForEach visits every live cell exactly once, in unspecified order.
func (g *Grid) ForEach(visit func(*Cell)) { g.store.ForEach(visit) }

// Count returns the number of live cells.
func (g *Grid) Count() int { return g.store.Count() }

// Store exposes the underlying cell store for collaborators that
// enumerate or look up cells directly (pathfinding, rendering). Mutation
// through the store obeys the same single-writer rules as the grid.
func (g *Grid) Store() *Store { return g.store }

// FilterFunc decides whether a neighbor candidate is included. center is
// the queried cell, candidate the occupied neighbor under consideration.
type FilterFunc func(center, candidate *Cell) bool

// Neighbors returns the occupied cells adjacent to c: the four
// orthogonal neighbors in east, south, west, north order, then — when
// diagonals is set — the four corner neighbors in south-east,
// south-west, north-west, north-east order. Holes in the sparse board
// are skipped, never padded. A non-nil filter excludes candidates it
// rejects.
//
// The returned slice is freshly allocated on every call; callers may
// retain it.
func (g *Grid) Neighbors(c *Cell, diagonals bool, filter FilterFunc) []*Cell {
	offsets := square.Directions
	if diagonals {
		offsets = make([]square.Coord, 0, 8)
		offsets = append(offsets, square.Directions...)
		offsets = append(offsets, square.Diagonals...)
	}
	center := c.Coord()
	res := make([]*Cell, 0, len(offsets))
	for _, d := range offsets {
		nb, ok := g.store.Get(center.Add(d).Key())
		if !ok {
			continue
		}
		if filter != nil && !filter(c, nb) {
			continue
		}
		res = append(res, nb)
	}
	return res
}

// Distance returns the travel distance from a to b: Chebyshev distance
// on the lattice plus the signed height delta b.H - a.H. The height term
// makes the metric deliberately asymmetric — climbing costs more than
// descending.
func (g *Grid) Distance(a, b *Cell) float64 {
	return float64(square.Chebyshev(a.Coord(), b.Coord())) + (b.H - a.H)
}

// RandomCell returns a uniformly chosen cell over the store's current
// enumeration order. The order is implementation-defined but stable
// between mutations. Returns ErrEmptyGrid on an empty board.
func (g *Grid) RandomCell() (*Cell, error) {
	n := g.store.Count()
	if n == 0 {
		return nil, ErrEmptyGrid
	}
	idx := rand.Intn(n)
	var picked *Cell
	i := 0
	g.store.ForEach(func(c *Cell) {
		if i == idx {
			picked = c
		}
		i++
	})
	return picked, nil
}
