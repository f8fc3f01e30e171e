package grid

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/gravitas-games/gridboard/square"
)

// HeightFunc assigns a height to a lattice coordinate during generation.
type HeightFunc func(c square.Coord) float64

// FlatHeights returns a HeightFunc placing every cell at h.
func FlatHeights(h float64) HeightFunc {
	return func(square.Coord) float64 { return h }
}

// NoiseHeights returns a HeightFunc sampling layered simplex noise, for
// natural-looking terrain relief. scale stretches the noise across the
// lattice (smaller = smoother), amplitude is the output range
// [0, amplitude], octaves layers detail (each octave doubles frequency
// and halves weight). The same seed always yields the same heights.
func NoiseHeights(seed int64, scale, amplitude float64, octaves int) HeightFunc {
	if octaves < 1 {
		octaves = 1
	}
	noise := opensimplex.NewNormalized(seed)
	return func(c square.Coord) float64 {
		x := float64(c.Q)
		y := float64(c.R)
		total := 0.0
		weight := 1.0
		norm := 0.0
		freq := scale
		for i := 0; i < octaves; i++ {
			total += noise.Eval2(x*freq, y*freq) * weight
			norm += weight
			weight *= 0.5
			freq *= 2
		}
		return total / norm * amplitude
	}
}
