package path

import (
	"container/heap"
	"math"

	"github.com/gravitas-games/gridboard/grid"
	"github.com/gravitas-games/gridboard/square"
)

// AStar computes a shortest path using the A* algorithm.
//   - start, goal: lattice coordinates
//   - h: admissible heuristic (e.g. HeuristicTo(goal))
//   - neighbors: returns adjacent coordinates to explore
//   - cost: edge cost between two adjacent coordinates (floored at 1)
//
// Returns the path including start and goal, or nil if no path exists.
// Search state lives in a fresh Scratch per call.
func AStar(start, goal square.Coord,
	h func(a square.Coord) float64,
	neighbors func(a square.Coord) []square.Coord,
	cost func(a, b square.Coord) float64,
) []square.Coord {
	return AStarScratch(start, goal, h, neighbors, cost, NewScratch())
}

// AStarScratch is AStar recording its search state into the supplied
// side table, which the caller may inspect afterwards (costs, parents,
// visited set). The table is reset before use.
func AStarScratch(start, goal square.Coord,
	h func(a square.Coord) float64,
	neighbors func(a square.Coord) []square.Coord,
	cost func(a, b square.Coord) float64,
	scratch *Scratch,
) []square.Coord {
	if start == goal {
		return []square.Coord{start}
	}
	scratch.Reset()

	open := &nodePQ{}
	heap.Init(open)
	push := func(a square.Coord, f float64) { heap.Push(open, &pqNode{a: a, f: f}) }

	startNode := scratch.Node(start.Key())
	startNode.Priority = h(start)
	push(start, startNode.Priority)

	goalKey := goal.Key()

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode).a
		ck := cur.Key()
		cn := scratch.Node(ck)
		if cn.Visited {
			continue
		}
		cn.Visited = true
		if ck == goalKey {
			return reconstruct(scratch, start.Key(), goalKey, goal)
		}
		for _, nb := range neighbors(cur) {
			nk := nb.Key()
			nn := scratch.Node(nk)
			if nn.Visited {
				continue
			}
			step := cost(cur, nb)
			if step < 1 {
				step = 1
			}
			tentative := cn.Cost + step
			if nn.HasParent && tentative >= nn.Cost {
				continue
			}
			nn.Cost = tentative
			nn.Parent = ck
			nn.HasParent = true
			f := tentative + h(nb)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				f = tentative
			}
			nn.Priority = f
			push(nb, f)
		}
	}
	return nil
}

// reconstruct walks parent keys back from the goal and reverses.
func reconstruct(scratch *Scratch, startKey, goalKey square.Key, goal square.Coord) []square.Coord {
	res := []square.Coord{goal}
	k := goalKey
	for k != startKey {
		n, ok := scratch.Lookup(k)
		if !ok || !n.HasParent {
			return nil
		}
		k = n.Parent
		c, err := square.ParseKey(k)
		if err != nil {
			return nil
		}
		res = append(res, c)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// PQ implementation
type pqNode struct {
	a square.Coord
	f float64
}

type nodePQ []*pqNode

func (p nodePQ) Len() int            { return len(p) }
func (p nodePQ) Less(i, j int) bool  { return p[i].f < p[j].f }
func (p nodePQ) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *nodePQ) Push(x any)         { *p = append(*p, x.(*pqNode)) }
func (p *nodePQ) Pop() any           { old := *p; n := len(old); x := old[n-1]; *p = old[:n-1]; return x }

// HeuristicTo returns the Chebyshev-distance heuristic toward goal.
func HeuristicTo(goal square.Coord) func(a square.Coord) float64 {
	return func(a square.Coord) float64 { return float64(square.Chebyshev(a, goal)) }
}

// GridNeighbors returns a neighbor callback over the occupied, walkable
// cells of g. Holes and blocked cells are simply absent from the result.
func GridNeighbors(g *grid.Grid, diagonals bool) func(a square.Coord) []square.Coord {
	return func(a square.Coord) []square.Coord {
		cell, ok := g.CellAt(a)
		if !ok {
			return nil
		}
		nbs := g.Neighbors(cell, diagonals, func(_, candidate *grid.Cell) bool {
			return candidate.Walkable
		})
		out := make([]square.Coord, len(nbs))
		for i, nb := range nbs {
			out[i] = nb.Coord()
		}
		return out
	}
}

// HeightCost returns an edge-cost callback using the grid's travel
// distance, so climbs cost more than descents. AStar floors steps at 1.
func HeightCost(g *grid.Grid) func(a, b square.Coord) float64 {
	return func(a, b square.Coord) float64 {
		ca, okA := g.CellAt(a)
		cb, okB := g.CellAt(b)
		if !okA || !okB {
			return 1
		}
		return g.Distance(ca, cb)
	}
}

// FindOnGrid runs A* between two cells of g over walkable neighbors with
// height-aware costs. Convenience for the common case.
func FindOnGrid(g *grid.Grid, start, goal square.Coord, diagonals bool) []square.Coord {
	return AStar(start, goal, HeuristicTo(goal), GridNeighbors(g, diagonals), HeightCost(g))
}
