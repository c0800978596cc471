package gamemath

import "math"

// SurfaceY returns the smallest y at which the vertical line through x meets
// the boundary of poly. With y growing down that is the walkable top of a
// collider, ramps included. ok is false when the line misses poly.
func SurfaceY(poly Polygon, x float64) (y float64, ok bool) {
	y = math.Inf(1)
	for i, a := range poly {
		b := poly.At(i + 1)
		lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
		if x < lo || x > hi {
			continue
		}
		var hit float64
		if a.X == b.X {
			hit = math.Min(a.Y, b.Y)
		} else {
			hit = a.Y + (x-a.X)*(b.Y-a.Y)/(b.X-a.X)
		}
		if hit < y {
			y, ok = hit, true
		}
	}
	return y, ok
}

// SnapToSurfaceY returns the y position that rests an object of height
// objectH on a surface at surfaceY.
func SnapToSurfaceY(objectH, surfaceY, offset float64) float64 {
	return surfaceY - objectH + offset
}
