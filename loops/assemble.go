package loops

import (
	"fmt"

	"github.com/automoto/tilemesh/contour"
	"github.com/automoto/tilemesh/shared/gamemath"
)

// Mode selects how Assemble treats an island with several loops.
type Mode int

const (
	// Holes extracts every loop and orders the outer boundary first.
	Holes Mode = iota
	// NoHoles asserts the island boundary is one loop.
	NoHoles
)

func (m Mode) String() string {
	if m == NoHoles {
		return "no-holes"
	}
	return "holes"
}

// Assemble chains segs into closed loops. A chain grows by appending the
// segment whose start equals the chain's last point; it closes when it gets
// back to its first point. Loops never repeat their first vertex at the end.
//
// Lookups go through a start-point index, so assembly is linear in the
// number of segments. Chains start from the first unused segment in input
// order.
func Assemble(segs []contour.Segment, mode Mode) ([]gamemath.Polygon, error) {
	starts := make(map[gamemath.Point]int, len(segs))
	for i, s := range segs {
		if j, dup := starts[s.A]; dup {
			return nil, fmt.Errorf("%w: segments %d and %d both start at %v",
				ErrNonManifoldBoundary, j, i, s.A)
		}
		starts[s.A] = i
	}

	used := make([]bool, len(segs))
	var loops []gamemath.Polygon
	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		loop := gamemath.Polygon{s.A}
		for p := s.B; p != loop[0]; {
			next, ok := starts[p]
			if !ok || used[next] {
				return nil, fmt.Errorf("%w: open chain of %d vertices ends at %v",
					ErrNonManifoldBoundary, len(loop), p)
			}
			used[next] = true
			loop = append(loop, p)
			p = segs[next].B
		}
		loops = append(loops, loop)
	}

	switch mode {
	case NoHoles:
		if len(loops) != 1 {
			return nil, fmt.Errorf("%w: expected a single loop, found %d", ErrNonManifoldBoundary, len(loops))
		}
		if !gamemath.IsCCW(loops[0]) {
			return nil, fmt.Errorf("%w: the only loop is clockwise", ErrNoOuterLoop)
		}
		return loops, nil
	default:
		return outerFirst(loops)
	}
}

// outerFirst moves the one counter-clockwise loop to the front, keeping the
// holes in their extraction order.
func outerFirst(loops []gamemath.Polygon) ([]gamemath.Polygon, error) {
	outer := -1
	count := 0
	for i, l := range loops {
		if gamemath.IsCCW(l) {
			outer = i
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("%w: found %d of %d loops", ErrNoOuterLoop, count, len(loops))
	}
	ordered := make([]gamemath.Polygon, 0, len(loops))
	ordered = append(ordered, loops[outer])
	ordered = append(ordered, loops[:outer]...)
	return append(ordered, loops[outer+1:]...), nil
}
