// Package collider loads baked collider polygons into a resolv space and
// checks them against the grid they were baked from.
package collider

import (
	"errors"
	"fmt"
	"log"

	"github.com/solarlune/resolv"

	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/shared/gamemath"
	"github.com/automoto/tilemesh/tags"
)

// ErrNotConvex is returned by Build for polygons resolv cannot represent.
var ErrNotConvex = errors.New("collider: polygon is not convex")

// Space holds one resolv object per collider polygon. Each object keeps its
// world-space polygon in Data for exact tests.
type Space struct {
	Space     *resolv.Space
	MapWidth  int
	MapHeight int
}

// Build creates a space of width x height world pixels, bucketed in cells of
// cellW x cellH, with one convex object per polygon. Polygons with a sloped
// edge are also tagged as ramps.
func Build(polys []gamemath.Polygon, width, height, cellW, cellH int) (*Space, error) {
	space := resolv.NewSpace(width, height, cellW, cellH)

	ramps := 0
	for i, poly := range polys {
		if !gamemath.IsCCW(poly) || !gamemath.IsConvex(poly) {
			return nil, fmt.Errorf("%w: polygon %d %v", ErrNotConvex, i, poly)
		}
		b := gamemath.Bounds(poly)

		objTags := []string{tags.ResolvSolid}
		if hasSlope(poly) {
			objTags = append(objTags, tags.ResolvRamp)
			ramps++
		}
		obj := resolv.NewObject(b.MinX, b.MinY, b.W(), b.H(), objTags...)

		// Shape points are relative to the object position
		points := make([]float64, 0, 2*len(poly))
		for _, p := range poly {
			points = append(points, p.X-b.MinX, p.Y-b.MinY)
		}
		obj.SetShape(resolv.NewConvexPolygon(b.MinX, b.MinY, points...))
		obj.Data = poly
		space.Add(obj)
	}

	log.Printf("Built collider space: %d objects (%d ramps), %dx%d map", len(polys), ramps, width, height)

	return &Space{Space: space, MapWidth: width, MapHeight: height}, nil
}

func hasSlope(poly gamemath.Polygon) bool {
	for i, p := range poly {
		q := poly.At(i + 1)
		if p.X != q.X && p.Y != q.Y {
			return true
		}
	}
	return false
}

// Blocked reports whether the box at (x,y) of size w x h overlaps a
// collider. Touching edges do not count as overlap.
func (s *Space) Blocked(x, y, w, h float64) bool {
	probe := resolv.NewObject(x, y, w, h, tags.ResolvProbe)
	probe.SetShape(resolv.NewRectangle(0, 0, w, h))
	s.Space.Add(probe)
	defer s.Space.Remove(probe)

	check := probe.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return false
	}

	centre := gamemath.Pt(x+w/2, y+h/2)
	box := gamemath.Polygon{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for _, obj := range check.Objects {
		if probe.Shape.Intersection(0, 0, obj.Shape) != nil {
			return true
		}
		// Edge crossings miss full containment either way round.
		poly, ok := obj.Data.(gamemath.Polygon)
		if !ok {
			continue
		}
		if strictlyInside(poly, centre) {
			return true
		}
		for _, v := range poly {
			if strictlyInside(box, v) {
				return true
			}
		}
	}
	return false
}

// GroundY returns the first collider surface at or below (x, y), ramps
// included, scanning down to the bottom of the map.
func (s *Space) GroundY(x, y float64) (float64, bool) {
	depth := float64(s.MapHeight) - y
	if depth <= 0 {
		return 0, false
	}
	column := resolv.NewObject(x, y, 1, depth, tags.ResolvProbe)
	s.Space.Add(column)
	defer s.Space.Remove(column)

	check := column.Check(0, 0, tags.ResolvSolid, tags.ResolvRamp)
	if check == nil {
		return 0, false
	}

	best, found := 0.0, false
	for _, obj := range check.Objects {
		poly, ok := obj.Data.(gamemath.Polygon)
		if !ok {
			continue
		}
		surface, ok := gamemath.SurfaceY(poly, x)
		if !ok || surface < y {
			continue
		}
		if !found || surface < best {
			best, found = surface, true
		}
	}
	return best, found
}

// strictlyInside reports whether p lies inside the convex CCW polygon poly,
// boundary excluded.
func strictlyInside(poly gamemath.Polygon, p gamemath.Point) bool {
	for i, a := range poly {
		if !gamemath.IsLeft(a, poly.At(i+1), p) {
			return false
		}
	}
	return true
}

// Report lists the tiles whose centres disagree with the collider space.
type Report struct {
	Uncovered []grid.Pos // solid tiles with no collider at their centre
	Intruding []grid.Pos // walkable tiles with a collider at their centre
}

// OK reports whether the space matched the grid everywhere.
func (r Report) OK() bool {
	return len(r.Uncovered) == 0 && len(r.Intruding) == 0
}

// Verify probes a small box at the centre of every solid and walkable tile
// of g. tileW and tileH must match the sizes the colliders were baked with.
func Verify(g *grid.Grid, s *Space, tileW, tileH float64) Report {
	var r Report
	pw, ph := tileW/4, tileH/4
	probe := func(p grid.Pos) bool {
		cx := (float64(p.X) + 0.5) * tileW
		cy := (float64(p.Y) + 0.5) * tileH
		return s.Blocked(cx-pw/2, cy-ph/2, pw, ph)
	}

	for _, p := range g.Positions(grid.Solid) {
		if !probe(p) {
			r.Uncovered = append(r.Uncovered, p)
		}
	}
	for _, p := range g.Positions(grid.Walkable) {
		if probe(p) {
			r.Intruding = append(r.Intruding, p)
		}
	}

	if !r.OK() {
		log.Printf("Warning: collider space disagrees with grid: %d uncovered, %d intruding",
			len(r.Uncovered), len(r.Intruding))
	}
	return r
}
