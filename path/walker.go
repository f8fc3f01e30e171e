package path

import "github.com/gravitas-games/gridboard/square"

// Walker steps through a computed path one cell at a time, for movement
// systems that advance an actor across ticks.
type Walker struct {
	route []square.Coord
	pos   int
}

// NewWalker returns a walker positioned at the first cell of route.
// A nil or empty route yields a walker that is already done.
func NewWalker(route []square.Coord) *Walker {
	return &Walker{route: route}
}

// Current returns the cell the walker stands on. Returns the zero
// coordinate and false when the route is empty.
func (w *Walker) Current() (square.Coord, bool) {
	if len(w.route) == 0 {
		return square.Coord{}, false
	}
	return w.route[w.pos], true
}

// Peek returns the next cell without advancing, or false at the end.
func (w *Walker) Peek() (square.Coord, bool) {
	if w.pos+1 >= len(w.route) {
		return square.Coord{}, false
	}
	return w.route[w.pos+1], true
}

// Advance moves one step along the route and returns the new position,
// or false if the walker is already at the end.
func (w *Walker) Advance() (square.Coord, bool) {
	if w.pos+1 >= len(w.route) {
		return square.Coord{}, false
	}
	w.pos++
	return w.route[w.pos], true
}

// Done reports whether the walker has reached the last cell.
func (w *Walker) Done() bool {
	return len(w.route) == 0 || w.pos == len(w.route)-1
}

// Remaining returns the number of steps left.
func (w *Walker) Remaining() int {
	if len(w.route) == 0 {
		return 0
	}
	return len(w.route) - 1 - w.pos
}
