// Package gamemath holds the 2D primitives shared by every stage of the
// bake pipeline: points, polygons and the orientation tests built on them.
// It has no dependencies on the grid, tiled or resolv packages.
package gamemath

import (
	"fmt"
	"math"
)

// Point is a 2D position. Marching-squares output uses small integer values
// stored as float64, world-space output uses tile units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies each axis independently.
func (p Point) Scale(sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Polygon is an ordered, implicitly closed vertex list: the last vertex
// connects back to the first and is never repeated.
type Polygon []Point

// Clone returns an independent copy of poly.
func (poly Polygon) Clone() Polygon {
	out := make(Polygon, len(poly))
	copy(out, poly)
	return out
}

// At returns the vertex at i, wrapping around in both directions.
func (poly Polygon) At(i int) Point {
	n := len(poly)
	return poly[((i%n)+n)%n]
}

// Reverse returns poly with its winding flipped.
func Reverse(poly Polygon) Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// Rotate returns poly re-ordered so that it starts at index start.
func Rotate(poly Polygon, start int) Polygon {
	out := make(Polygon, 0, len(poly))
	out = append(out, poly[start:]...)
	return append(out, poly[:start]...)
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// W returns the box width.
func (r Rect) W() float64 { return r.MaxX - r.MinX }

// H returns the box height.
func (r Rect) H() float64 { return r.MaxY - r.MinY }

// Bounds returns the bounding box of poly. An empty polygon has a zero box.
func Bounds(poly Polygon) Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range poly {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}
