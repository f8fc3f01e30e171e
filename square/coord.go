// Package square provides coordinate math for a square lattice: the
// sibling topology of the hex grids used elsewhere in the engine. Cells
// are addressed by axial (q, r) pairs; the third component s exists only
// for interface parity with the hex types and is never consulted by
// hashing or distance.
package square

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coord represents axial coordinates (q, r) on a square lattice.
type Coord struct {
	Q int
	R int
}

// Directions are the four orthogonal unit steps in fixed order:
// east, south, west, north.
var Directions = []Coord{
	{+1, 0}, {0, +1}, {-1, 0}, {0, -1},
}

// Diagonals are the four corner steps in fixed order:
// south-east, south-west, north-west, north-east.
var Diagonals = []Coord{
	{+1, +1}, {-1, +1}, {-1, -1}, {+1, -1},
}

// S returns the derived third component (-q - r), kept for parity with
// cube-coordinate hex types. Square-lattice math never uses it.
func (c Coord) S() int { return -c.Q - c.R }

// Add returns a+b.
func (c Coord) Add(b Coord) Coord { return Coord{c.Q + b.Q, c.R + b.R} }

// Mul scales the coordinate vector by k.
func (c Coord) Mul(k int) Coord { return Coord{c.Q * k, c.R * k} }

// Chebyshev returns the square-lattice distance between a and b:
// the maximum of the absolute per-axis deltas.
func Chebyshev(a, b Coord) int {
	dq := a.Q - b.Q
	if dq < 0 {
		dq = -dq
	}
	dr := a.R - b.R
	if dr < 0 {
		dr = -dr
	}
	if dq > dr {
		return dq
	}
	return dr
}

// Key is the canonical storage key for a coordinate. Two coordinates
// produce the same key iff their (q, r) pairs are equal.
type Key string

// Key formats the canonical key "q:r". The ':' delimiter cannot appear
// in the text of a signed integer, so keys are unambiguous.
func (c Coord) Key() Key {
	return Key(strconv.Itoa(c.Q) + ":" + strconv.Itoa(c.R))
}

// ParseKey inverts Coord.Key.
func ParseKey(k Key) (Coord, error) {
	i := strings.IndexByte(string(k), ':')
	if i < 0 {
		return Coord{}, fmt.Errorf("malformed key %q", k)
	}
	q, err := strconv.Atoi(string(k[:i]))
	if err != nil {
		return Coord{}, fmt.Errorf("malformed key %q: %w", k, err)
	}
	r, err := strconv.Atoi(string(k[i+1:]))
	if err != nil {
		return Coord{}, fmt.Errorf("malformed key %q: %w", k, err)
	}
	return Coord{Q: q, R: r}, nil
}

// FromWorld converts a world-space position (x, z) to the containing
// cell coordinate. fullCellSize is the full cell width in world units.
// Each axis rounds half away from zero, so a position exactly on a cell
// boundary belongs to the cell farther from the origin.
func FromWorld(x, z, fullCellSize float64) Coord {
	return Coord{
		Q: int(math.Round(x / fullCellSize)),
		R: int(math.Round(z / fullCellSize)),
	}
}

// ToWorld converts a cell coordinate to the world-space position of its
// center. Exact inverse of FromWorld for any integer coordinate:
// FromWorld(ToWorld(c)) == c.
func ToWorld(c Coord, fullCellSize float64) (x, z float64) {
	return float64(c.Q) * fullCellSize, float64(c.R) * fullCellSize
}
