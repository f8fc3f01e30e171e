package grid

import (
	"errors"
	"testing"

	"github.com/gravitas-games/gridboard/square"
)

func fill3x3(t *testing.T) *Grid {
	t.Helper()
	g := New(10)
	for q := -1; q <= 1; q++ {
		for r := -1; r <= 1; r++ {
			if !g.Add(NewCell(q, r)) {
				t.Fatalf("failed to add (%d,%d)", q, r)
			}
		}
	}
	return g
}

func coordSet(cells []*Cell) map[square.Coord]bool {
	set := make(map[square.Coord]bool, len(cells))
	for _, c := range cells {
		set[c.Coord()] = true
	}
	return set
}

func TestNeighborsOrthogonal(t *testing.T) {
	g := fill3x3(t)
	center, _ := g.CellAt(square.Coord{Q: 0, R: 0})

	got := g.Neighbors(center, false, nil)
	if len(got) != 4 {
		t.Fatalf("expected 4 orthogonal neighbors, got %d", len(got))
	}
	// fixed order: east, south, west, north
	want := []square.Coord{{Q: 1, R: 0}, {Q: 0, R: 1}, {Q: -1, R: 0}, {Q: 0, R: -1}}
	for i, c := range got {
		if c.Coord() != want[i] {
			t.Fatalf("neighbor %d = %v, want %v", i, c.Coord(), want[i])
		}
	}
}

func TestNeighborsDiagonal(t *testing.T) {
	g := fill3x3(t)
	center, _ := g.CellAt(square.Coord{Q: 0, R: 0})

	got := g.Neighbors(center, true, nil)
	if len(got) != 8 {
		t.Fatalf("expected 8 neighbors with diagonals, got %d", len(got))
	}
	set := coordSet(got)
	for q := -1; q <= 1; q++ {
		for r := -1; r <= 1; r++ {
			if q == 0 && r == 0 {
				continue
			}
			if !set[square.Coord{Q: q, R: r}] {
				t.Fatalf("missing neighbor (%d,%d)", q, r)
			}
		}
	}
}

func TestNeighborsCornerSkipsHoles(t *testing.T) {
	g := fill3x3(t)
	corner, _ := g.CellAt(square.Coord{Q: 1, R: 1})

	got := g.Neighbors(corner, false, nil)
	if len(got) != 2 {
		t.Fatalf("corner should have 2 orthogonal neighbors, got %d", len(got))
	}
	for _, c := range got {
		if c == nil {
			t.Fatalf("holes must be skipped, not null-padded")
		}
	}

	withDiag := g.Neighbors(corner, true, nil)
	if len(withDiag) != 3 {
		t.Fatalf("corner should have 3 neighbors with diagonals, got %d", len(withDiag))
	}
}

func TestNeighborsFilter(t *testing.T) {
	g := fill3x3(t)
	blocked, _ := g.CellAt(square.Coord{Q: 1, R: 0})
	blocked.Walkable = false
	center, _ := g.CellAt(square.Coord{Q: 0, R: 0})

	got := g.Neighbors(center, false, func(_, candidate *Cell) bool {
		return candidate.Walkable
	})
	if len(got) != 3 {
		t.Fatalf("filter should exclude the blocked cell, got %d neighbors", len(got))
	}
	for _, c := range got {
		if c == blocked {
			t.Fatalf("filter failed to exclude blocked cell")
		}
	}
}

func TestNeighborsFreshSlicePerCall(t *testing.T) {
	g := fill3x3(t)
	center, _ := g.CellAt(square.Coord{Q: 0, R: 0})

	first := g.Neighbors(center, false, nil)
	snapshot := make([]*Cell, len(first))
	copy(snapshot, first)

	second := g.Neighbors(center, true, nil)
	_ = second
	for i := range first {
		if first[i] != snapshot[i] {
			t.Fatalf("a later call mutated a previously returned slice")
		}
	}
}

func TestDistanceAsymmetry(t *testing.T) {
	g := New(10)
	a := NewCell(0, 0)
	b := NewCell(0, 1)
	b.H = 3

	if d := g.Distance(a, b); d != 4 {
		t.Fatalf("distance(a,b) = %v, want 4", d)
	}
	if d := g.Distance(b, a); d != -2 {
		t.Fatalf("distance(b,a) = %v, want -2", d)
	}

	// symmetric when heights are equal
	c := NewCell(3, -2)
	if g.Distance(a, c) != g.Distance(c, a) {
		t.Fatalf("distance should be symmetric for equal heights")
	}
}

func TestGenerateBounds(t *testing.T) {
	g := New(10)
	g.Generate(GenConfig{Size: 5})

	if !g.Autogenerated() {
		t.Fatalf("Generate must mark the grid autogenerated")
	}
	if g.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", g.Size())
	}
	if g.Count() != 25 {
		t.Fatalf("expected 25 cells, got %d", g.Count())
	}

	seen := make(map[square.Coord]bool)
	g.ForEach(func(c *Cell) {
		if seen[c.Coord()] {
			t.Fatalf("duplicate cell at %v", c.Coord())
		}
		seen[c.Coord()] = true
		if !c.Walkable {
			t.Fatalf("generated cell at %v should be walkable", c.Coord())
		}
		if c.H != 0 {
			t.Fatalf("generated cell at %v should have default height", c.Coord())
		}
	})
	// half-ceiling rule: q in [-3,2), r in [-2,3)
	for q := -3; q < 2; q++ {
		for r := -2; r < 3; r++ {
			if !seen[square.Coord{Q: q, R: r}] {
				t.Fatalf("missing generated cell (%d,%d)", q, r)
			}
		}
	}
}

func TestGenerateWithHeights(t *testing.T) {
	g := New(10)
	g.Generate(GenConfig{Size: 4, Height: FlatHeights(2.5)})
	g.ForEach(func(c *Cell) {
		if c.H != 2.5 {
			t.Fatalf("cell %v has height %v, want 2.5", c.Coord(), c.H)
		}
	})
}

func TestGenerateReplacesContents(t *testing.T) {
	g := New(10)
	g.Add(NewCell(40, 40))
	g.Generate(GenConfig{Size: 2})
	if g.Count() != 4 {
		t.Fatalf("Generate should replace prior contents, count = %d", g.Count())
	}
	if _, ok := g.CellAt(square.Coord{Q: 40, R: 40}); ok {
		t.Fatalf("stale cell survived Generate")
	}
}

func TestRandomCell(t *testing.T) {
	g := New(10)
	if _, err := g.RandomCell(); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("expected ErrEmptyGrid on empty board, got %v", err)
	}

	g.Generate(GenConfig{Size: 3})
	for i := 0; i < 50; i++ {
		c, err := g.RandomCell()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored, ok := g.CellAt(c.Coord()); !ok || stored != c {
			t.Fatalf("RandomCell returned a cell not in the store: %v", c.Coord())
		}
	}
}

func TestWorldConversions(t *testing.T) {
	g := New(10) // fullCellSize 20
	c := NewCell(2, -3)
	c.H = 7
	g.Add(c)

	x, y, z := g.CellToWorld(c)
	if x != 40 || y != 7 || z != -60 {
		t.Fatalf("CellToWorld = (%v,%v,%v), want (40,7,-60)", x, y, z)
	}

	got, ok := g.CellAtWorld(x, z)
	if !ok || got != c {
		t.Fatalf("CellAtWorld did not find the cell back")
	}

	// fullCellSize must track SetCellSize
	g.SetCellSize(5)
	if coord := g.WorldToCell(40, -60); coord != (square.Coord{Q: 4, R: -6}) {
		t.Fatalf("WorldToCell after SetCellSize = %v, want (4,-6)", coord)
	}
}
