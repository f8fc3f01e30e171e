package square

// Block returns the coordinates of a size x size square region centered
// near the origin, in row order. The region follows the half-ceiling
// rule: q spans [-ceil(size/2), floor(size/2)) and r spans
// [-floor(size/2), ceil(size/2)), so odd sizes lean one cell toward
// negative q and positive r. size <= 0 yields an empty slice.
func Block(size int) []Coord {
	if size <= 0 {
		return nil
	}
	hi := size / 2        // floor(size/2)
	lo := (size + 1) / 2  // ceil(size/2)
	res := make([]Coord, 0, size*size)
	for q := -lo; q < hi; q++ {
		for r := -hi; r < lo; r++ {
			res = append(res, Coord{Q: q, R: r})
		}
	}
	return res
}

// Ring returns the coordinates at exact Chebyshev distance k from
// center c, walking the square perimeter clockwise from the north-west
// corner. If k == 0, returns [c].
func Ring(c Coord, k int) []Coord {
	if k <= 0 {
		return []Coord{c}
	}
	res := make([]Coord, 0, 8*k)
	// top edge (west to east), right edge, bottom edge, left edge
	for q := -k; q < k; q++ {
		res = append(res, c.Add(Coord{q, -k}))
	}
	for r := -k; r < k; r++ {
		res = append(res, c.Add(Coord{k, r}))
	}
	for q := k; q > -k; q-- {
		res = append(res, c.Add(Coord{q, k}))
	}
	for r := k; r > -k; r-- {
		res = append(res, c.Add(Coord{-k, r}))
	}
	return res
}

// Disk returns all coordinates at Chebyshev distance <= r from c.
func Disk(c Coord, r int) []Coord {
	if r < 0 {
		return nil
	}
	side := 2*r + 1
	res := make([]Coord, 0, side*side)
	for q := -r; q <= r; q++ {
		for r2 := -r; r2 <= r; r2++ {
			res = append(res, c.Add(Coord{q, r2}))
		}
	}
	return res
}
