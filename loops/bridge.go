package loops

import (
	"fmt"

	"github.com/automoto/tilemesh/shared/gamemath"
)

// Bridge splices every hole into the outer loop and returns the resulting
// single, self-touching polygon. loops[0] must be the outer loop; the rest
// are holes, as returned by Assemble in Holes mode. The input is not
// modified.
//
// Holes are processed from last to first. A hole's anchor is its vertex with
// the largest x (ties: largest y); the bridge vertex is the nearest vertex of
// any other remaining loop on the anchor's row, strictly to its right. The
// hole, rotated to start at the anchor, is inserted after the bridge vertex
// and closed back to it through the anchor:
//
//	..., b, a, h1, ..., hk, a, b, ...
//
// This relies on every edge crossing of an integer row being a vertex,
// which holds for unminimized marching-squares loops; minimize afterwards.
func Bridge(loops []gamemath.Polygon) (gamemath.Polygon, error) {
	if len(loops) == 0 {
		return nil, fmt.Errorf("%w: no loops to bridge", ErrNoOuterLoop)
	}
	work := make([]gamemath.Polygon, len(loops))
	for i, l := range loops {
		work[i] = l.Clone()
	}

	for i := len(work) - 1; i >= 1; i-- {
		hole := work[i]
		anchor := anchorIndex(hole)
		a := hole[anchor]

		target, at := -1, -1
		best := 0.0
		for j := 0; j < i; j++ {
			for k, p := range work[j] {
				if p.Y != a.Y || p.X <= a.X {
					continue
				}
				if d := p.X - a.X; target < 0 || d < best {
					target, at, best = j, k, d
				}
			}
		}
		if target < 0 {
			return nil, fmt.Errorf("%w: hole %d anchored at %v", ErrBridgeCandidateNotFound, i, a)
		}

		b := work[target][at]
		tail := gamemath.Rotate(hole, anchor)
		tail = append(tail, a, b)

		spliced := make(gamemath.Polygon, 0, len(work[target])+len(tail))
		spliced = append(spliced, work[target][:at+1]...)
		spliced = append(spliced, tail...)
		spliced = append(spliced, work[target][at+1:]...)
		work[target] = spliced
		work = work[:i]
	}
	return work[0], nil
}

// anchorIndex returns the index of the vertex with the largest x, breaking
// ties by the largest y.
func anchorIndex(loop gamemath.Polygon) int {
	best := 0
	for i, p := range loop {
		q := loop[best]
		if p.X > q.X || (p.X == q.X && p.Y > q.Y) {
			best = i
		}
	}
	return best
}
