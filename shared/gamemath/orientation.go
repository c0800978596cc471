package gamemath

import (
	"errors"
	"math"
)

// ErrNotCCW is returned by operations that require a counter-clockwise polygon.
var ErrNotCCW = errors.New("gamemath: polygon is not counter-clockwise")

// convexEpsilon is the tolerance for turn tests in IsConvex. Cross products
// within it count as collinear.
const convexEpsilon = 1e-9

// SignedArea returns twice the signed area of triangle abc:
// positive when c lies left of the directed line a->b.
func SignedArea(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// IsLeft reports whether c is strictly left of a->b.
func IsLeft(a, b, c Point) bool {
	return SignedArea(a, b, c) > 0
}

// IsRight reports whether c is strictly right of a->b.
func IsRight(a, b, c Point) bool {
	return SignedArea(a, b, c) < 0
}

// IsCCW reports whether loop winds counter-clockwise. It looks at the vertex
// with the lowest y (ties: highest x), which is always a strict corner of a
// simple loop, and checks that the turn there is a left turn.
func IsCCW(loop Polygon) bool {
	if len(loop) < 3 {
		return false
	}
	best := 0
	for i, p := range loop {
		q := loop[best]
		if p.Y < q.Y || (p.Y == q.Y && p.X > q.X) {
			best = i
		}
	}
	return IsLeft(loop.At(best-1), loop[best], loop.At(best+1))
}

// Area returns the shoelace area of poly. The sign gives the winding:
// positive for counter-clockwise.
func Area(poly Polygon) float64 {
	var sum float64
	for i, p := range poly {
		q := poly.At(i + 1)
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// AbsArea returns the unsigned area of poly.
func AbsArea(poly Polygon) float64 {
	return math.Abs(Area(poly))
}

// IsConvex reports whether a counter-clockwise polygon has no right turn at
// any vertex. Collinear vertices are allowed.
func IsConvex(poly Polygon) bool {
	if len(poly) < 3 {
		return false
	}
	for i := range poly {
		if SignedArea(poly.At(i-1), poly[i], poly.At(i+1)) < -convexEpsilon {
			return false
		}
	}
	return true
}

// PointInPolygon reports whether p lies inside or on the boundary of poly.
//
// poly must be counter-clockwise (ErrNotCCW otherwise). The scan rejects as
// soon as p is right of an edge and accepts immediately on an exact hit on an
// edge, so it is only correct for convex polygons, or polygons that are
// star-shaped as seen from every edge. It is not a general
// point-in-polygon test.
func PointInPolygon(poly Polygon, p Point) (bool, error) {
	if !IsCCW(poly) {
		return false, ErrNotCCW
	}
	for i, a := range poly {
		b := poly.At(i + 1)
		s := SignedArea(a, b, p)
		if s == 0 && onSegment(a, b, p) {
			return true, nil
		}
		if s <= 0 {
			return false, nil
		}
	}
	return true, nil
}

// onSegment assumes a, b and p are collinear.
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
