package path

import (
	"testing"

	"github.com/gravitas-games/gridboard/grid"
	"github.com/gravitas-games/gridboard/square"
)

func board(t *testing.T, size int) *grid.Grid {
	t.Helper()
	g := grid.New(10)
	g.Generate(grid.GenConfig{Size: size})
	return g
}

func TestAStarStraightLine(t *testing.T) {
	g := board(t, 6)
	start := square.Coord{Q: -2, R: 0}
	goal := square.Coord{Q: 2, R: 0}

	route := FindOnGrid(g, start, goal, false)
	if route == nil {
		t.Fatalf("expected a path")
	}
	if route[0] != start || route[len(route)-1] != goal {
		t.Fatalf("path endpoints wrong: %v", route)
	}
	if len(route) != 5 {
		t.Fatalf("expected 5 cells along a straight line, got %d: %v", len(route), route)
	}
	for i := 1; i < len(route); i++ {
		if square.Chebyshev(route[i-1], route[i]) != 1 {
			t.Fatalf("non-adjacent step %v -> %v", route[i-1], route[i])
		}
	}
}

func TestAStarTrivial(t *testing.T) {
	g := board(t, 4)
	c := square.Coord{Q: 0, R: 0}
	route := FindOnGrid(g, c, c, false)
	if len(route) != 1 || route[0] != c {
		t.Fatalf("start == goal should yield [start], got %v", route)
	}
}

func TestAStarDetoursAroundBlockedCells(t *testing.T) {
	g := board(t, 5)
	// wall across q=0 except one gap at r=2
	for r := -2; r < 2; r++ {
		cell, ok := g.CellAt(square.Coord{Q: 0, R: r})
		if !ok {
			t.Fatalf("missing wall cell (0,%d)", r)
		}
		cell.Walkable = false
	}

	start := square.Coord{Q: -2, R: 0}
	goal := square.Coord{Q: 1, R: 0}
	route := FindOnGrid(g, start, goal, false)
	if route == nil {
		t.Fatalf("expected a detour path through the gap")
	}
	for _, c := range route {
		cell, ok := g.CellAt(c)
		if !ok || !cell.Walkable {
			t.Fatalf("path crosses blocked or missing cell %v", c)
		}
	}
}

func TestAStarNoPath(t *testing.T) {
	g := grid.New(10)
	g.Add(grid.NewCell(0, 0))
	g.Add(grid.NewCell(5, 5)) // unreachable island

	route := FindOnGrid(g, square.Coord{Q: 0, R: 0}, square.Coord{Q: 5, R: 5}, true)
	if route != nil {
		t.Fatalf("expected nil for unreachable goal, got %v", route)
	}
}

func TestAStarDiagonalsShortenPaths(t *testing.T) {
	g := board(t, 6)
	start := square.Coord{Q: -2, R: -2}
	goal := square.Coord{Q: 2, R: 2}

	ortho := FindOnGrid(g, start, goal, false)
	diag := FindOnGrid(g, start, goal, true)
	if ortho == nil || diag == nil {
		t.Fatalf("expected both paths to exist")
	}
	if len(diag) >= len(ortho) {
		t.Fatalf("diagonal path (%d) should be shorter than orthogonal (%d)", len(diag), len(ortho))
	}
	if len(diag) != 5 {
		t.Fatalf("expected 5 cells along the diagonal, got %d", len(diag))
	}
}

func TestAStarScratchStateInspectable(t *testing.T) {
	g := board(t, 4)
	start := square.Coord{Q: -1, R: -1}
	goal := square.Coord{Q: 1, R: 1}

	scratch := NewScratch()
	route := AStarScratch(start, goal, HeuristicTo(goal), GridNeighbors(g, false), HeightCost(g), scratch)
	if route == nil {
		t.Fatalf("expected a path")
	}

	gn, ok := scratch.Lookup(goal.Key())
	if !ok || !gn.Visited {
		t.Fatalf("goal should be visited in scratch state")
	}
	if !gn.HasParent {
		t.Fatalf("goal should record a parent key")
	}
	if gn.Cost <= 0 {
		t.Fatalf("goal cost should be positive, got %v", gn.Cost)
	}

	// a second search resets the table rather than accumulating state
	prev := scratch.Len()
	shortGoal := square.Coord{Q: 0, R: -1}
	AStarScratch(start, shortGoal, HeuristicTo(shortGoal), GridNeighbors(g, false), HeightCost(g), scratch)
	if scratch.Len() >= prev {
		t.Fatalf("scratch not reset between searches: %d entries, had %d", scratch.Len(), prev)
	}
}

func TestScratchReset(t *testing.T) {
	s := NewScratch()
	n := s.Node(square.Coord{Q: 1, R: 2}.Key())
	n.Cost = 9
	n.Visited = true
	if s.Len() != 1 {
		t.Fatalf("expected 1 touched cell, got %d", s.Len())
	}

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Reset should discard all state, %d entries left", s.Len())
	}
	fresh := s.Node(square.Coord{Q: 1, R: 2}.Key())
	if fresh.Cost != 0 || fresh.Visited || fresh.HasParent {
		t.Fatalf("state survived Reset: %+v", fresh)
	}
}

func TestWalker(t *testing.T) {
	g := board(t, 5)
	start := square.Coord{Q: -2, R: 0}
	goal := square.Coord{Q: 1, R: 0}
	route := FindOnGrid(g, start, goal, false)
	if route == nil {
		t.Fatalf("expected a path")
	}

	w := NewWalker(route)
	cur, ok := w.Current()
	if !ok || cur != start {
		t.Fatalf("walker should start at %v, got %v", start, cur)
	}
	if w.Remaining() != len(route)-1 {
		t.Fatalf("Remaining = %d, want %d", w.Remaining(), len(route)-1)
	}

	steps := 0
	for !w.Done() {
		next, ok := w.Peek()
		if !ok {
			t.Fatalf("Peek failed before Done")
		}
		got, ok := w.Advance()
		if !ok || got != next {
			t.Fatalf("Advance = %v, peeked %v", got, next)
		}
		steps++
		if steps > len(route) {
			t.Fatalf("walker overran the route")
		}
	}
	cur, _ = w.Current()
	if cur != goal {
		t.Fatalf("walker should end at %v, got %v", goal, cur)
	}
	if _, ok := w.Advance(); ok {
		t.Fatalf("Advance past the end should report false")
	}
}

func TestWalkerEmptyRoute(t *testing.T) {
	w := NewWalker(nil)
	if !w.Done() {
		t.Fatalf("empty walker should be done")
	}
	if _, ok := w.Current(); ok {
		t.Fatalf("empty walker has no current cell")
	}
	if w.Remaining() != 0 {
		t.Fatalf("empty walker has no remaining steps")
	}
}
